// Package geocoding resolves garage addresses to coordinates through external providers.
package geocoding

import (
	"context"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

// Provider turns a free-form address into coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// checked validates provider output so that a misbehaving upstream never stores
// an impossible garage position.
func checked(coords *models.Coordinates) (*models.Coordinates, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	return coords, nil
}
