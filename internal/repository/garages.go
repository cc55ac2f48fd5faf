package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/pitstop/internal/geo"
	"github.com/UnknownOlympus/pitstop/internal/models"
)

const garageColumns = `garage_id, owner_id, garage_name, email, contact, address, service_types, vehicle_type,
		latitude, longitude, image_path, geocoding_attempts`

// RegisterGarage creates the owner account and the garage in one transaction and
// returns the stored garage.
func (r *Repository) RegisterGarage(
	ctx context.Context,
	owner models.Account,
	garage models.Garage,
) (*models.Garage, error) {
	accountQuery := `
		INSERT INTO accounts (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id;
	`
	garageQuery := `
		INSERT INTO garages (owner_id, garage_name, email, contact, address, service_types, vehicle_type,
			latitude, longitude, image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING garage_id;
	`

	lat, lng := splitLocation(garage.Location)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, accountQuery,
		owner.Name, owner.Email, owner.PasswordHash, string(models.RoleGarage)).Scan(&garage.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create garage owner: %w", translate(err))
	}

	err = tx.QueryRow(ctx, garageQuery,
		garage.OwnerID, garage.Name, garage.Email, garage.Contact, garage.Address,
		garage.ServiceTypes, string(garage.VehicleType), lat, lng, garage.ImagePath,
	).Scan(&garage.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create garage: %w", translate(err))
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit garage registration: %w", err)
	}

	r.log.DebugContext(ctx, "Garage registered", "garage", garage.ID, "owner", garage.OwnerID,
		"located", garage.Location != nil)

	return &garage, nil
}

// GarageByID returns a single garage.
func (r *Repository) GarageByID(ctx context.Context, id int64) (*models.Garage, error) {
	query := `SELECT ` + garageColumns + ` FROM garages WHERE garage_id = $1;`

	garage, err := scanGarage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get garage: %w", translate(err))
	}

	return garage, nil
}

// GarageByOwner returns the garage run by the given owner account.
func (r *Repository) GarageByOwner(ctx context.Context, ownerID int64) (*models.Garage, error) {
	query := `SELECT ` + garageColumns + ` FROM garages WHERE owner_id = $1;`

	garage, err := scanGarage(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to get garage by owner: %w", translate(err))
	}

	return garage, nil
}

// GaragesInBox returns located garages inside the bounding box, closest to box.Center
// first, so the limit drops the farthest ones. The ordering is an equirectangular
// approximation; callers compute exact distances.
func (r *Repository) GaragesInBox(ctx context.Context, box geo.Box, limit int) ([]models.Garage, error) {
	query := `SELECT ` + garageColumns + `
		FROM garages
		WHERE
			latitude BETWEEN $1 AND $2
			AND longitude BETWEEN $3 AND $4
		ORDER BY
			(latitude - $5) ^ 2
			+ (LEAST(ABS(longitude - $6), 360 - ABS(longitude - $6)) * COS(RADIANS($5))) ^ 2,
			garage_id
		LIMIT $7;`

	rows, err := r.db.Query(ctx, query,
		box.MinLat, box.MaxLat, box.MinLng, box.MaxLng,
		box.Center.Latitude, box.Center.Longitude, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query garages in box: %w", err)
	}
	defer rows.Close()

	var garages []models.Garage
	for rows.Next() {
		garage, errScan := scanGarage(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan garage: %w", errScan)
		}
		garages = append(garages, *garage)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return garages, nil
}

func scanGarage(row rowScanner) (*models.Garage, error) {
	var (
		garage      models.Garage
		vehicleType string
		lat, lng    *float64
	)
	err := row.Scan(&garage.ID, &garage.OwnerID, &garage.Name, &garage.Email, &garage.Contact, &garage.Address,
		&garage.ServiceTypes, &vehicleType, &lat, &lng, &garage.ImagePath, &garage.GeocodingAttempts)
	if err != nil {
		return nil, err
	}
	garage.VehicleType = models.VehicleType(vehicleType)
	if lat != nil && lng != nil {
		garage.Location = &models.Coordinates{Latitude: *lat, Longitude: *lng}
	}

	return &garage, nil
}

func splitLocation(loc *models.Coordinates) (*float64, *float64) {
	if loc == nil {
		return nil, nil
	}
	lat, lng := loc.Latitude, loc.Longitude

	return &lat, &lng
}
