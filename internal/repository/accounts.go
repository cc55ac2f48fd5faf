package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

const accountColumns = `account_id, name, email, password_hash, role, created_at`

// CreateAccount inserts an account and returns its ID.
// An already registered email for the same role yields ErrConflict.
func (r *Repository) CreateAccount(ctx context.Context, acc models.Account) (int64, error) {
	query := `
		INSERT INTO accounts (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id;
	`

	var id int64
	err := r.db.QueryRow(ctx, query, acc.Name, acc.Email, acc.PasswordHash, string(acc.Role)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create account: %w", translate(err))
	}

	r.log.DebugContext(ctx, "Account created", "id", id, "role", acc.Role)

	return id, nil
}

// AccountByEmail looks an account up by email within a role.
func (r *Repository) AccountByEmail(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND role = $2;`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, email, string(role)))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", translate(err))
	}

	return acc, nil
}

// AccountByID looks an account up by its ID.
func (r *Repository) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", translate(err))
	}

	return acc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		acc  models.Account
		role string
	)
	if err := row.Scan(&acc.ID, &acc.Name, &acc.Email, &acc.PasswordHash, &role, &acc.CreatedAt); err != nil {
		return nil, err
	}
	acc.Role = models.Role(role)

	return &acc, nil
}
