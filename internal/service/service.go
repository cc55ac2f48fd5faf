// Package service holds the business rules of the garage locator: accounts,
// garage registration and search, service requests and coordinate backfilling.
package service

import (
	"context"
	"errors"
	"io"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

// Errors shared by the services. The HTTP layer maps them onto status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)

// NearbyCache remembers candidate garages for recent searches.
type NearbyCache interface {
	Get(ctx context.Context, origin models.Coordinates, radius float64) ([]models.Garage, error)
	Put(ctx context.Context, origin models.Coordinates, radius float64, garages []models.Garage) error
}

// ImageStore keeps uploaded garage photos.
type ImageStore interface {
	Save(r io.Reader) (string, error)
	Remove(name string) error
}
