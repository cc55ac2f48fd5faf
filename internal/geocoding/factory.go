package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"googlemaps.github.io/maps"
)

// ProviderType names a geocoding backend selectable through PITSTOP_PROVIDER_TYPE.
type ProviderType string

const (
	ProviderTypeGoogle    ProviderType = "google"
	ProviderTypeNominatim ProviderType = "nominatim"
	ProviderTypeVisicom   ProviderType = "visicom"
	// ProviderTypeNone disables geocoding; garages then need explicit coordinates.
	ProviderTypeNone ProviderType = "none"
)

const defaultVisicomRate = 5

var (
	// ErrUnsupportedProvider is returned for an unknown provider type.
	ErrUnsupportedProvider = errors.New("unsupported provider type")
	// ErrMissingAPIKey is returned when a keyed provider is configured without a key.
	ErrMissingAPIKey = errors.New("API key is required")
)

// ProviderConfig describes the geocoder garage registration and the backfill worker share.
type ProviderConfig struct {
	Type      ProviderType
	APIKey    string // Google and Visicom only
	RateLimit int    // requests per second, 0 leaves the provider default
	Logger    *slog.Logger
}

type constructor func(ProviderConfig) (Provider, error)

var constructors = map[ProviderType]constructor{
	ProviderTypeGoogle:    newGoogleProvider,
	ProviderTypeNominatim: func(c ProviderConfig) (Provider, error) { return NewNominatimProvider(c.Logger), nil },
	ProviderTypeVisicom:   newVisicomProvider,
}

// ParseProviderType normalizes a configured provider name. An empty name means none.
func ParseProviderType(name string) ProviderType {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ProviderTypeNone
	}

	return ProviderType(name)
}

// NewProvider builds the provider selected by config.Type.
func NewProvider(config ProviderConfig) (Provider, error) {
	build, ok := constructors[config.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, config.Type)
	}

	return build(config)
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, config.Type)
	}

	opts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		opts = append(opts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

func newVisicomProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, config.Type)
	}

	rps := config.RateLimit
	if rps <= 0 {
		rps = defaultVisicomRate
		config.Logger.Warn("Visicom rate limit not set, using default", "rps", rps)
	}

	return NewVisicomProvider(config.APIKey, rps, config.Logger), nil
}
