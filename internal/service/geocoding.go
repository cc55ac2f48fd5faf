package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/geocoding"
	"github.com/UnknownOlympus/pitstop/internal/metrics"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/repository"
)

const geocodeBatchLimit = 100

// GeocodingService backfills coordinates of garages that were registered without them.
// Every poll fetches a batch from the queue and fans it out to a fixed pool of workers.
type GeocodingService struct {
	log           *slog.Logger            // Logger for logging service activities
	queue         repository.GeocodeQueue // Garages still waiting for coordinates
	provider      geocoding.Provider      // Geocoding provider for external geocoding services
	providerName  string                  // Name of the provider for metrics labeling
	metrics       *metrics.Metrics        // Metrics for tracking service performance
	numWorkers    int                     // Number of concurrent workers for processing
	pollInterval  time.Duration           // Interval for polling the queue
	addressPrefix string                  // Address prefix for more accurate geocoding (country, city, etc.)
}

// NewGeocodingService creates a new instance of GeocodingService.
func NewGeocodingService(
	log *slog.Logger,
	queue repository.GeocodeQueue,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	addressPrefix string,
) *GeocodingService {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &GeocodingService{
		log:           log,
		queue:         queue,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		numWorkers:    numWorkers,
		pollInterval:  pollInterval,
		addressPrefix: addressPrefix,
	}
}

// Run polls the queue until the context is cancelled.
func (gs *GeocodingService) Run(ctx context.Context) {
	ticker := time.NewTicker(gs.pollInterval)
	defer ticker.Stop()

	gs.log.InfoContext(ctx, "Geocoding service started", "provider", gs.providerName, "workers", gs.numWorkers)

	for {
		select {
		case <-ctx.Done():
			gs.log.InfoContext(ctx, "Geocoding service stopped.")
			return
		case <-ticker.C:
			gs.log.DebugContext(ctx, "Polling for garages to geocode...")
			gs.processBatch(ctx)
		}
	}
}

// processBatch fetches garages without coordinates, starts a worker pool for them and
// waits for all workers to finish.
func (gs *GeocodingService) processBatch(ctx context.Context) {
	tasks, err := gs.queue.FetchGaragesForGeocoding(ctx, geocodeBatchLimit)
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to fetch garages for geocoding", "error", err)
		return
	}
	if len(tasks) == 0 {
		gs.log.DebugContext(ctx, "No garages to geocode.")
		return
	}

	gs.log.InfoContext(ctx, "Found garages to geocode. Starting worker pool.",
		"jobs", len(tasks),
		"num_workers", gs.numWorkers,
	)

	jobs := make(chan models.GeocodeTask, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= gs.numWorkers; i++ {
		wgr.Add(1)
		go gs.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	gs.log.InfoContext(ctx, "Geocoding batch finished", "jobs", len(tasks))
}

// worker geocodes the garages it receives. A failure increments the garage's attempt
// counter so the queue eventually gives up on addresses no provider can resolve.
func (gs *GeocodingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.GeocodeTask) {
	defer wg.Done()
	for task := range jobs {
		gs.metrics.ActiveWorkers.Inc()
		gs.handle(ctx, idx, task)
		gs.metrics.ActiveWorkers.Dec()
	}
}

func (gs *GeocodingService) handle(ctx context.Context, idx int, task models.GeocodeTask) {
	gs.log.DebugContext(ctx, "Geocoding garage", "worker", idx, "garage", task.GarageID)

	startTime := time.Now()
	coords, err := gs.provider.Geocode(ctx, gs.addressPrefix+task.Address)
	gs.metrics.RequestSeconds.WithLabelValues(gs.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "garage", task.GarageID, "error", err)
		gs.metrics.TaskProcessed.WithLabelValues("failure").Inc()
		gs.metrics.APIErrors.Inc()

		if err = gs.queue.IncrementFailureCount(ctx, task.GarageID, err.Error()); err != nil {
			gs.log.ErrorContext(ctx, "Could not update failure count for garage",
				"worker", idx,
				"garage", task.GarageID,
				"error", err,
			)
		}
		return
	}

	gs.metrics.TaskProcessed.WithLabelValues("success").Inc()

	if err = gs.queue.UpdateGarageCoordinates(ctx, task.GarageID, *coords); err != nil {
		gs.log.ErrorContext(ctx, "Failed to update coordinates for garage",
			"worker", idx,
			"garage", task.GarageID,
			"error", err,
		)
		return
	}

	gs.log.DebugContext(ctx, "Worker successfully geocoded the garage", "worker", idx, "garage", task.GarageID)
}
