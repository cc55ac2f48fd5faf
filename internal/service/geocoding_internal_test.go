package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/metrics"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

// Worker pools and the poll loop must not outlive the calls that start them. The
// opencensus view worker is started at init by the Google Maps client.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func TestProcessBatch(t *testing.T) {
	mockQueue := mocks.NewGeocodeQueue(t)
	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	ctx := t.Context()
	service := NewGeocodingService(logger, mockQueue, mockProvider, "nominatim", m, 2, time.Second, "Kyiv, ")

	t.Run("successful processing", func(t *testing.T) {
		tasks := []models.GeocodeTask{{GarageID: 1, Address: "Khreshchatyk 1"}}
		coords := &models.Coordinates{Latitude: 50.45, Longitude: 30.52}

		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Kyiv, Khreshchatyk 1").Return(coords, nil).Once()
		mockQueue.On("UpdateGarageCoordinates", ctx, int64(1), *coords).Return(nil).Once()

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(m.TaskProcessed.WithLabelValues("success")), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(m.ActiveWorkers), 0)
	})

	t.Run("fetch returns error", func(t *testing.T) {
		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return(nil, assert.AnError).Once()

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("fetch returns empty list", func(t *testing.T) {
		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return([]models.GeocodeTask{}, nil).Once()

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("provider returns error", func(t *testing.T) {
		tasks := []models.GeocodeTask{{GarageID: 2, Address: "Nowhere"}}
		geocodeErr := errors.New("geocoding failed")

		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Kyiv, Nowhere").Return(nil, geocodeErr).Once()
		mockQueue.On("IncrementFailureCount", ctx, int64(2), geocodeErr.Error()).Return(nil).Once()

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(m.APIErrors), 0)
	})

	t.Run("error to increment failure count", func(t *testing.T) {
		tasks := []models.GeocodeTask{{GarageID: 2, Address: "Nowhere"}}
		geocodeErr := errors.New("geocoding failed")

		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Kyiv, Nowhere").Return(nil, geocodeErr).Once()
		mockQueue.On("IncrementFailureCount", ctx, int64(2), geocodeErr.Error()).Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("error to update coordinates", func(t *testing.T) {
		tasks := []models.GeocodeTask{{GarageID: 1, Address: "Khreshchatyk 1"}}
		coords := &models.Coordinates{Latitude: 50.45, Longitude: 30.52}

		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Kyiv, Khreshchatyk 1").Return(coords, nil).Once()
		mockQueue.On("UpdateGarageCoordinates", ctx, int64(1), *coords).Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("batch spread over workers", func(t *testing.T) {
		tasks := []models.GeocodeTask{
			{GarageID: 10, Address: "A"},
			{GarageID: 11, Address: "B"},
			{GarageID: 12, Address: "C"},
		}
		coords := &models.Coordinates{Latitude: 1, Longitude: 2}

		mockQueue.On("FetchGaragesForGeocoding", ctx, 100).Return(tasks, nil).Once()
		for _, task := range tasks {
			mockProvider.On("Geocode", ctx, "Kyiv, "+task.Address).Return(coords, nil).Once()
			mockQueue.On("UpdateGarageCoordinates", ctx, task.GarageID, *coords).Return(nil).Once()
		}

		service.processBatch(ctx)

		mockQueue.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("run stops on cancelled context", func(t *testing.T) {
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		service.Run(tctx)
	})
}
