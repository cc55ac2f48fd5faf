package models

import "time"

// Role distinguishes drivers looking for a garage from garage owners.
type Role string

const (
	RoleUser   Role = "user"
	RoleGarage Role = "garage"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleGarage
}

// Account is a login identity. Password hashes never leave the service layer.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
