package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fetchGaragesQuery = `
	SELECT garage_id, address
	FROM garages
	WHERE
		latitude IS NULL
		AND geocoding_attempts < $1
		AND address <> ''
	ORDER BY created_at ASC
	LIMIT $2;
`

func TestFetchGaragesForGeocoding(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	limit := 10

	t.Run("error - query garages", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchGaragesQuery)).
			WithArgs(repository.MaxGeocodingAttempts, limit).
			WillReturnError(assert.AnError)

		tasks, err := repo.FetchGaragesForGeocoding(ctx, limit)

		require.Nil(t, tasks)
		require.ErrorContains(t, err, "failed to query garages without coordinates")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan garage", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchGaragesQuery)).
			WithArgs(repository.MaxGeocodingAttempts, limit).
			WillReturnRows(pgxmock.NewRows([]string{"garage_id", "address"}).AddRow("invalid_id", "valid address"))

		tasks, err := repo.FetchGaragesForGeocoding(ctx, limit)

		require.Nil(t, tasks)
		require.ErrorContains(t, err, "failed to scan garage without coordinates")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchGaragesQuery)).
			WithArgs(repository.MaxGeocodingAttempts, limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"garage_id", "address"}).AddRow(int64(123), "valid address").
					RowError(1, assert.AnError),
			)

		tasks, err := repo.FetchGaragesForGeocoding(ctx, limit)

		require.Nil(t, tasks)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - fetch garages with address", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchGaragesQuery)).
			WithArgs(repository.MaxGeocodingAttempts, limit).
			WillReturnRows(pgxmock.NewRows([]string{"garage_id", "address"}).AddRow(int64(123), "valid address"))

		tasks, err := repo.FetchGaragesForGeocoding(ctx, limit)

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, models.GeocodeTask{GarageID: 123, Address: "valid address"}, tasks[0])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateGarageCoordinates(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	garageID := int64(123)
	coords := models.Coordinates{Latitude: 45.123, Longitude: 12.456}
	query := `
		UPDATE garages
		SET
			latitude = $1,
			longitude = $2,
			geocoding_error = NULL
		WHERE
			garage_id = $3;
	`

	t.Run("error - update garage coords", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs(coords.Latitude, coords.Longitude, garageID).
			WillReturnError(assert.AnError)

		err = repo.UpdateGarageCoordinates(ctx, garageID, coords)

		require.ErrorContains(t, err, "failed to update garage coordinates")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - update garage coords", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs(coords.Latitude, coords.Longitude, garageID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdateGarageCoordinates(ctx, garageID, coords)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementFailureCount(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	garageID := int64(123)
	query := `
		UPDATE garages
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE garage_id = $2;
	`

	t.Run("error - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("error", garageID).WillReturnError(assert.AnError)

		err = repo.IncrementFailureCount(ctx, garageID, "error")

		require.ErrorContains(t, err, "failed to update geocoding error and number of attempts")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("error", garageID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.IncrementFailureCount(ctx, garageID, "error")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrate(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS accounts`)).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, repository.Migrate(t.Context(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
