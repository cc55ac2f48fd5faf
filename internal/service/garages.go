package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/auth"
	"github.com/UnknownOlympus/pitstop/internal/cache"
	"github.com/UnknownOlympus/pitstop/internal/geo"
	"github.com/UnknownOlympus/pitstop/internal/geocoding"
	"github.com/UnknownOlympus/pitstop/internal/metrics"
	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/UnknownOlympus/pitstop/internal/repository"
	"github.com/UnknownOlympus/pitstop/internal/storage"
)

const (
	// MaxSearchRadius bounds the radius a client may ask for, in meters.
	MaxSearchRadius = 100_000
	// cachePadding widens the database box so a cached candidate list stays valid
	// for every origin that rounds to the same cache key.
	cachePadding    = 200.0
	geocodeTimeout  = 10 * time.Second
	providerSyncTag = "sync"
)

// GarageRegistration is what a garage owner submits to get listed.
type GarageRegistration struct {
	Name         string
	Email        string
	Password     string
	Contact      string
	Address      string
	ServiceTypes []string
	VehicleType  models.VehicleType
	Location     *models.Coordinates // optional; geocoded from Address when nil
	Image        io.Reader           // optional
}

// NearbyGarage is a search hit with its distance from the driver.
type NearbyGarage struct {
	models.Garage
	Distance float64 `json:"distance"`
	Display  string  `json:"display"`
	Nearest  bool    `json:"nearest"`
}

// DistanceResult describes the route from a driver to one garage. Meters is nil and
// Display holds the placeholder when either end has no known position.
type DistanceResult struct {
	GarageID int64                `json:"garage_id"`
	Meters   *float64             `json:"distance"`
	Display  string               `json:"display"`
	Path     []models.Coordinates `json:"path,omitempty"`
}

// GarageService registers garages and answers distance queries.
type GarageService struct {
	log           *slog.Logger
	store         repository.GarageStore
	metrics       *metrics.Metrics
	radius        float64
	limit         int
	geocoder      geocoding.Provider
	addressPrefix string
	cache         NearbyCache
	images        ImageStore
}

// NewGarageService creates the service with the default search radius in meters and
// the maximum number of candidates read per search.
func NewGarageService(
	log *slog.Logger,
	store repository.GarageStore,
	metrics *metrics.Metrics,
	radius float64,
	limit int,
) *GarageService {
	return &GarageService{log: log, store: store, metrics: metrics, radius: radius, limit: limit}
}

// WithGeocoder enables synchronous geocoding of addresses during registration.
func (s *GarageService) WithGeocoder(provider geocoding.Provider, addressPrefix string) *GarageService {
	s.geocoder = provider
	s.addressPrefix = addressPrefix
	return s
}

// WithCache enables caching of nearby search candidates.
func (s *GarageService) WithCache(c NearbyCache) *GarageService {
	s.cache = c
	return s
}

// WithImages enables photo uploads.
func (s *GarageService) WithImages(images ImageStore) *GarageService {
	s.images = images
	return s
}

// Register creates the owner account and the garage. When no coordinates are given the
// address is geocoded right away; if that fails the garage is stored without a position
// and the background worker retries later.
func (s *GarageService) Register(ctx context.Context, reg GarageRegistration) (*models.Garage, error) {
	if err := validateRegistration(&reg); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	garage := models.Garage{
		Name:         reg.Name,
		Email:        reg.Email,
		Contact:      reg.Contact,
		Address:      reg.Address,
		ServiceTypes: reg.ServiceTypes,
		VehicleType:  reg.VehicleType,
		Location:     reg.Location,
	}
	if garage.Location == nil {
		garage.Location = s.geocode(ctx, reg.Address)
	}

	if reg.Image != nil && s.images != nil {
		garage.ImagePath, err = s.images.Save(reg.Image)
		if err != nil {
			if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrUnsupportedType) ||
				errors.Is(err, storage.ErrEmptyImage) {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			return nil, err
		}
	}

	owner := models.Account{Name: reg.Name, Email: reg.Email, PasswordHash: hash, Role: models.RoleGarage}
	stored, err := s.store.RegisterGarage(ctx, owner, garage)
	if err != nil {
		s.discardImage(ctx, garage.ImagePath)
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register garage: %w", err)
	}

	s.log.InfoContext(ctx, "Garage registered", "garage", stored.ID, "located", stored.Location != nil)
	return stored, nil
}

func validateRegistration(reg *GarageRegistration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = normalizeEmail(reg.Email)
	reg.Contact = strings.TrimSpace(reg.Contact)
	reg.Address = strings.TrimSpace(reg.Address)

	if reg.Name == "" || reg.Password == "" || reg.Contact == "" || reg.Address == "" || !validEmail(reg.Email) {
		return fmt.Errorf("%w: name, email, password, contact and address are required", ErrInvalidInput)
	}
	if err := reg.VehicleType.ValidateServices(reg.ServiceTypes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if reg.Location != nil {
		if err := reg.Location.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	return nil
}

// geocode returns nil when no provider is configured or the address cannot be resolved.
func (s *GarageService) geocode(ctx context.Context, address string) *models.Coordinates {
	if s.geocoder == nil {
		return nil
	}

	gctx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	start := time.Now()
	coords, err := s.geocoder.Geocode(gctx, s.addressPrefix+address)
	s.metrics.RequestSeconds.WithLabelValues(providerSyncTag).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.APIErrors.Inc()
		s.log.WarnContext(ctx, "Address not geocoded, queued for background worker", "error", err)
		return nil
	}

	return coords
}

func (s *GarageService) discardImage(ctx context.Context, name string) {
	if name == "" || s.images == nil {
		return
	}
	if err := s.images.Remove(name); err != nil {
		s.log.WarnContext(ctx, "Failed to remove orphaned image", "image", name, "error", err)
	}
}

// Nearby returns the garages within radius meters of origin, nearest first. A radius
// of zero selects the configured default.
func (s *GarageService) Nearby(ctx context.Context, origin models.Coordinates, radius float64) ([]NearbyGarage, error) {
	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if radius == 0 {
		radius = s.radius
	}
	if !(radius > 0 && radius <= MaxSearchRadius) { // also rejects NaN
		return nil, fmt.Errorf("%w: radius must be within (0, %d] meters", ErrInvalidInput, MaxSearchRadius)
	}

	candidates, err := s.candidates(ctx, origin, radius)
	if err != nil {
		return nil, err
	}

	ranked, err := geo.Rank(origin, candidates, func(g models.Garage) *models.Coordinates { return g.Location })
	if err != nil {
		return nil, err
	}
	ranked = geo.Within(ranked, radius)

	nearest, found := geo.Nearest(ranked)
	out := make([]NearbyGarage, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, NearbyGarage{
			Garage:   r.Item,
			Distance: r.Meters,
			Display:  geo.FormatDistance(r.Meters),
			Nearest:  found && r.Item.ID == nearest.Item.ID,
		})
	}

	return out, nil
}

// candidates reads the garages around origin from the cache or the database.
func (s *GarageService) candidates(ctx context.Context, origin models.Coordinates, radius float64) ([]models.Garage, error) {
	outcome := "disabled"
	if s.cache != nil {
		garages, err := s.cache.Get(ctx, origin, radius)
		switch {
		case err == nil:
			s.metrics.NearbySearches.WithLabelValues("hit").Inc()
			return garages, nil
		case errors.Is(err, cache.ErrCacheMiss):
			outcome = "miss"
		default:
			outcome = "error"
			s.log.WarnContext(ctx, "Nearby cache unavailable", "error", err)
		}
	}
	s.metrics.NearbySearches.WithLabelValues(outcome).Inc()

	box, err := geo.BoundingBox(origin, radius+cachePadding)
	if err != nil {
		return nil, err
	}

	garages, err := s.store.GaragesInBox(ctx, box, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search garages: %w", err)
	}

	// A full page is ordered around this exact origin; other origins sharing the
	// cache key could have lost their nearest garage to the limit.
	if s.limit > 0 && len(garages) >= s.limit {
		s.log.DebugContext(ctx, "Nearby search hit the candidate limit", "limit", s.limit)
		return garages, nil
	}

	if s.cache != nil && outcome == "miss" {
		if err = s.cache.Put(ctx, origin, radius, garages); err != nil {
			s.log.WarnContext(ctx, "Failed to cache nearby garages", "error", err)
		}
	}

	return garages, nil
}

// Distance measures the distance from origin to a garage. A nil origin means the driver's
// position is unknown; the result then carries the placeholder instead of a number.
func (s *GarageService) Distance(ctx context.Context, garageID int64, origin *models.Coordinates) (*DistanceResult, error) {
	garage, err := s.store.GarageByID(ctx, garageID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: garage %d", ErrNotFound, garageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load garage: %w", err)
	}

	result := &DistanceResult{GarageID: garage.ID}

	meters, err := measure(origin, garage.Location)
	if errors.Is(err, geo.ErrLocationUnavailable) {
		s.log.DebugContext(ctx, "Distance unavailable", "garage", garage.ID, "reason", err)
		result.Display = geo.Placeholder
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	result.Meters = &meters
	result.Display = geo.FormatDistance(meters)
	result.Path = []models.Coordinates{*origin, geo.CurveMidpoint(*origin, *garage.Location), *garage.Location}

	return result, nil
}

func measure(origin, target *models.Coordinates) (float64, error) {
	if origin == nil {
		return 0, fmt.Errorf("%w: driver position unknown", geo.ErrLocationUnavailable)
	}
	if target == nil {
		return 0, fmt.Errorf("%w: garage not geocoded yet", geo.ErrLocationUnavailable)
	}

	return geo.Distance(*origin, *target)
}
