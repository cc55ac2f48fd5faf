package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes garage addresses with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

// GoogleAPIClient is the subset of *maps.Client used by the provider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider wraps an already configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode returns the location of the first Google result for address.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding garage address using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	best := bestGoogleResult(results)
	if best.PartialMatch {
		gp.log.WarnContext(ctx, "Google returned only a partial match", "address", address,
			"formatted", best.FormattedAddress)
	}
	loc := best.Geometry.Location

	return checked(&models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng})
}

// bestGoogleResult picks the first full match, falling back to the first result.
func bestGoogleResult(results []maps.GeocodingResult) maps.GeocodingResult {
	for _, r := range results {
		if !r.PartialMatch {
			return r
		}
	}

	return results[0]
}
