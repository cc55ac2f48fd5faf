package repository_test

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestRowColumns = []string{
	"request_id", "garage_id", "user_id", "name", "service_type", "vehicle_type",
	"contact", "message", "status", "created_at", "updated_at",
}

func TestCreateRequest(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	req := models.ServiceRequest{
		GarageID:    5,
		UserID:      3,
		ServiceType: "Car Oil Change",
		VehicleType: models.VehicleCar,
		Contact:     "+1 555 0101",
		Message:     "Tomorrow morning please",
	}
	query := regexp.QuoteMeta(`INSERT INTO service_requests`)

	t.Run("error - insert", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).
			WithArgs(int64(5), int64(3), req.ServiceType, "car", req.Contact, req.Message, "Pending").
			WillReturnError(assert.AnError)

		stored, err := repo.CreateRequest(ctx, req)

		require.Nil(t, stored)
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - pending request", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		now := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery(query).
			WithArgs(int64(5), int64(3), req.ServiceType, "car", req.Contact, req.Message, "Pending").
			WillReturnRows(pgxmock.NewRows([]string{"request_id", "created_at", "updated_at"}).AddRow(int64(77), now, now))

		stored, err := repo.CreateRequest(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, int64(77), stored.ID)
		assert.Equal(t, models.StatusPending, stored.Status)
		assert.Equal(t, now, stored.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRequestByID(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`WHERE sr.request_id = $1;`)

	t.Run("error - not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(pgx.ErrNoRows)

		_, err = repo.RequestByID(ctx, 1)

		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - request with customer name", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		now := time.Now().UTC()

		mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(
			pgxmock.NewRows(requestRowColumns).AddRow(int64(1), int64(5), int64(3), "Jane", "Bike Repair", "bike",
				"555", "", "Accepted", now, now),
		)

		req, err := repo.RequestByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Jane", req.CustomerName)
		assert.Equal(t, models.StatusAccepted, req.Status)
		assert.Equal(t, models.VehicleBike, req.VehicleType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRequestsForGarage(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`WHERE sr.garage_id = $1`)

	t.Run("error - query", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnError(assert.AnError)

		requests, err := repo.RequestsForGarage(ctx, 5)

		require.Nil(t, requests)
		require.ErrorContains(t, err, "failed to query service requests")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - requests listed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		now := time.Now().UTC()

		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnRows(
			pgxmock.NewRows(requestRowColumns).
				AddRow(int64(2), int64(5), int64(3), "Jane", "Bike Repair", "bike", "555", "", "Pending", now, now).
				AddRow(int64(1), int64(5), int64(4), "John", "Bike Oil Change", "bike", "556", "hi", "Rejected", now, now),
		)

		requests, err := repo.RequestsForGarage(ctx, 5)

		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, "John", requests[1].CustomerName)
		assert.Equal(t, models.StatusRejected, requests[1].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateRequestStatus(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := regexp.QuoteMeta(`UPDATE service_requests`)

	t.Run("error - exec", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("Accepted", int64(9), "Pending").WillReturnError(assert.AnError)

		err = repo.UpdateRequestStatus(ctx, 9, models.StatusPending, models.StatusAccepted)

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - status changed meanwhile", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("Accepted", int64(9), "Pending").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.UpdateRequestStatus(ctx, 9, models.StatusPending, models.StatusAccepted)

		require.ErrorIs(t, err, repository.ErrStale)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - status updated", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(query).WithArgs("Completed", int64(9), "Accepted").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdateRequestStatus(ctx, 9, models.StatusAccepted, models.StatusCompleted)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
