package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/pitstop/internal/models"
)

// CreateRequest stores a new service request in Pending status and returns it with
// the generated ID and timestamps.
func (r *Repository) CreateRequest(ctx context.Context, req models.ServiceRequest) (*models.ServiceRequest, error) {
	query := `
		INSERT INTO service_requests (garage_id, user_id, service_type, vehicle_type, contact, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING request_id, created_at, updated_at;
	`

	req.Status = models.StatusPending
	err := r.db.QueryRow(ctx, query,
		req.GarageID, req.UserID, req.ServiceType, string(req.VehicleType), req.Contact, req.Message,
		string(req.Status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create service request: %w", translate(err))
	}

	return &req, nil
}

// RequestByID returns a single service request with the customer's name.
func (r *Repository) RequestByID(ctx context.Context, id int64) (*models.ServiceRequest, error) {
	query := `
		SELECT sr.request_id, sr.garage_id, sr.user_id, a.name, sr.service_type, sr.vehicle_type,
			sr.contact, sr.message, sr.status, sr.created_at, sr.updated_at
		FROM service_requests sr
		JOIN accounts a ON a.account_id = sr.user_id
		WHERE sr.request_id = $1;
	`

	req, err := scanRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get service request: %w", translate(err))
	}

	return req, nil
}

// RequestsForGarage returns every request addressed to the garage, newest first.
func (r *Repository) RequestsForGarage(ctx context.Context, garageID int64) ([]models.ServiceRequest, error) {
	query := `
		SELECT sr.request_id, sr.garage_id, sr.user_id, a.name, sr.service_type, sr.vehicle_type,
			sr.contact, sr.message, sr.status, sr.created_at, sr.updated_at
		FROM service_requests sr
		JOIN accounts a ON a.account_id = sr.user_id
		WHERE sr.garage_id = $1
		ORDER BY sr.created_at DESC, sr.request_id DESC;
	`

	rows, err := r.db.Query(ctx, query, garageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query service requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		req, errScan := scanRequest(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan service request: %w", errScan)
		}
		requests = append(requests, *req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return requests, nil
}

// UpdateRequestStatus moves a request from one status to another. The update only
// applies while the stored status still equals from; otherwise ErrStale is returned.
func (r *Repository) UpdateRequestStatus(ctx context.Context, id int64, from, to models.RequestStatus) error {
	query := `
		UPDATE service_requests
		SET
			status = $1,
			updated_at = now()
		WHERE
			request_id = $2
			AND status = $3;
	`

	tag, err := r.db.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update service request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update service request %d: %w", id, ErrStale)
	}

	return nil
}

func scanRequest(row rowScanner) (*models.ServiceRequest, error) {
	var (
		req                 models.ServiceRequest
		vehicleType, status string
	)
	err := row.Scan(&req.ID, &req.GarageID, &req.UserID, &req.CustomerName, &req.ServiceType, &vehicleType,
		&req.Contact, &req.Message, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	req.VehicleType = models.VehicleType(vehicleType)
	req.Status = models.RequestStatus(status)

	return &req, nil
}
