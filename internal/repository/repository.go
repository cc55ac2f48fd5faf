package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/pitstop/internal/geo"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Errors returned by the repository regardless of the driver underneath.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
	ErrStale    = errors.New("record was changed concurrently")
)

const uniqueViolation = "23505"

type Repository struct {
	db  Database
	log *slog.Logger
}

// AccountStore persists login identities.
type AccountStore interface {
	CreateAccount(ctx context.Context, acc models.Account) (int64, error)
	AccountByEmail(ctx context.Context, email string, role models.Role) (*models.Account, error)
	AccountByID(ctx context.Context, id int64) (*models.Account, error)
}

// GarageStore persists garages and answers spatial prefilter queries.
type GarageStore interface {
	RegisterGarage(ctx context.Context, owner models.Account, garage models.Garage) (*models.Garage, error)
	GarageByID(ctx context.Context, id int64) (*models.Garage, error)
	GarageByOwner(ctx context.Context, ownerID int64) (*models.Garage, error)
	GaragesInBox(ctx context.Context, box geo.Box, limit int) ([]models.Garage, error)
}

// RequestStore persists service requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, req models.ServiceRequest) (*models.ServiceRequest, error)
	RequestByID(ctx context.Context, id int64) (*models.ServiceRequest, error)
	RequestsForGarage(ctx context.Context, garageID int64) ([]models.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, from, to models.RequestStatus) error
}

// GeocodeQueue exposes garages still waiting for coordinates.
type GeocodeQueue interface {
	FetchGaragesForGeocoding(ctx context.Context, limit int) ([]models.GeocodeTask, error)
	UpdateGarageCoordinates(ctx context.Context, garageID int64, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, garageID int64, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}

	return err
}
