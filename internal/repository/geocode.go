package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

// MaxGeocodingAttempts is how many times the worker retries a garage address.
const MaxGeocodingAttempts = 5

// FetchGaragesForGeocoding retrieves garages that were registered without coordinates.
// It returns garages that have a NULL latitude, fewer than MaxGeocodingAttempts attempts
// and a non-empty address, oldest first, limited to the specified count.
func (r *Repository) FetchGaragesForGeocoding(ctx context.Context, limit int) ([]models.GeocodeTask, error) {
	query := `
		SELECT garage_id, address
		FROM garages
		WHERE
			latitude IS NULL
			AND geocoding_attempts < $1
			AND address <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query garages without coordinates: %w", err)
	}
	defer rows.Close()

	var tasks []models.GeocodeTask
	for rows.Next() {
		var task models.GeocodeTask
		if errScan := rows.Scan(&task.GarageID, &task.Address); errScan != nil {
			return nil, fmt.Errorf("failed to scan garage without coordinates: %w", errScan)
		}
		r.log.DebugContext(ctx, "Garage waiting for coordinates", "garage", task.GarageID, "address", task.Address)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdateGarageCoordinates stores resolved coordinates and clears the last geocoding error.
func (r *Repository) UpdateGarageCoordinates(ctx context.Context, garageID int64, coords models.Coordinates) error {
	query := `
		UPDATE garages
		SET
			latitude = $1,
			longitude = $2,
			geocoding_error = NULL
		WHERE
			garage_id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, garageID)
	if err != nil {
		return fmt.Errorf("failed to update garage coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the attempt counter of a garage and records the error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, garageID int64, errMsg string) error {
	query := `
		UPDATE garages
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE garage_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, garageID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}
