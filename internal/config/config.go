package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the garage locator service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP API (also serving /healthz and /metrics).
// - Auth: Token signing settings.
// - Search: Defaults for nearby garage lookups.
// - Geocoder: Provider and worker settings for resolving garage addresses.
// - Redis: Optional nearby-search cache.
// - Kafka: Optional service request event stream.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env        string         `yaml:"env"`        // Env is the current environment: local, development, production.
	Port       int            `yaml:"http.port"`  // Port is the HTTP API port.
	CORSOrigin string         `yaml:"http.cors"`  // Origin allowed to call the API from a browser.
	UploadDir  string         `yaml:"upload_dir"` // Directory where garage photos are stored.
	Auth       AuthConfig     `yaml:"auth"`
	Search     SearchConfig   `yaml:"search"`
	Geocoder   GeocoderConfig `yaml:"geocoder"`
	Redis      RedisConfig    `yaml:"redis"`
	Kafka      KafkaConfig    `yaml:"kafka"`
	Database   PostgresConfig `yaml:"postgres"` // Database holds the postgres database configuration
}

// AuthConfig holds the JWT settings.
type AuthConfig struct {
	Secret string        `yaml:"jwt_secret"`
	TTL    time.Duration `yaml:"jwt_ttl"`
}

// SearchConfig holds nearby search defaults.
type SearchConfig struct {
	Radius float64 `yaml:"radius"` // Default radius in meters.
	Limit  int     `yaml:"limit"`  // Maximum number of candidates read from the database.
}

// GeocoderConfig selects the geocoding provider and sizes the background worker pool.
type GeocoderConfig struct {
	ProviderType string        `yaml:"provider.type"` // google, nominatim, visicom or none
	APIKey       string        `yaml:"api_key"`       // The API key for accessing external services.
	Workers      int           `yaml:"workers"`       // The number of concurrent workers.
	Interval     time.Duration `yaml:"interval"`      // The duration between polling rounds.
	AddrPrefix   string        `yaml:"addr_prefix"`   // Address prefix for more accurate geocoding
}

// RedisConfig enables the nearby cache when URL is set.
type RedisConfig struct {
	URL string        `yaml:"url"`
	TTL time.Duration `yaml:"ttl"`
}

// KafkaConfig enables request events when Brokers is not empty.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (optionally seeded from a .env file)
// and panics if a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Env:        v.GetString("PITSTOP_ENV"),
		Port:       mustInt(v, "PITSTOP_HTTP_PORT", "failed to parse HTTP port from configuration"),
		CORSOrigin: v.GetString("PITSTOP_CORS_ORIGIN"),
		UploadDir:  v.GetString("PITSTOP_UPLOAD_DIR"),
		Auth: AuthConfig{
			Secret: v.GetString("PITSTOP_JWT_SECRET"),
			TTL:    mustDuration(v, "PITSTOP_JWT_TTL", "failed to parse token TTL from configuration"),
		},
		Search: SearchConfig{
			Radius: mustFloat(v, "PITSTOP_SEARCH_RADIUS", "failed to parse search radius from configuration"),
			Limit:  mustInt(v, "PITSTOP_SEARCH_LIMIT", "failed to parse search limit from configuration"),
		},
		Geocoder: GeocoderConfig{
			ProviderType: v.GetString("PITSTOP_PROVIDER_TYPE"),
			APIKey:       v.GetString("PITSTOP_PROVIDER_KEY"),
			Workers: mustInt(v, "PITSTOP_WORKERS",
				"failed to parse workers from configuration, must be an integer types"),
			Interval:   mustDuration(v, "PITSTOP_INTERVAL", "failed to parse interval from configuration"),
			AddrPrefix: v.GetString("PITSTOP_ADDRESS_PREFIX"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
			TTL: mustDuration(v, "PITSTOP_CACHE_TTL", "failed to parse cache TTL from configuration"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_REQUESTS_TOPIC"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PITSTOP_ENV", "production")
	v.SetDefault("PITSTOP_HTTP_PORT", "8080")
	v.SetDefault("PITSTOP_CORS_ORIGIN", "*")
	v.SetDefault("PITSTOP_UPLOAD_DIR", "uploads")
	v.SetDefault("PITSTOP_JWT_TTL", "24h")
	v.SetDefault("PITSTOP_SEARCH_RADIUS", "5000")
	v.SetDefault("PITSTOP_SEARCH_LIMIT", "200")
	v.SetDefault("PITSTOP_PROVIDER_TYPE", "nominatim")
	v.SetDefault("PITSTOP_WORKERS", "4")
	v.SetDefault("PITSTOP_INTERVAL", "10m")
	v.SetDefault("PITSTOP_CACHE_TTL", "1m")
	v.SetDefault("KAFKA_REQUESTS_TOPIC", "service-requests")
	v.SetDefault("DB_PORT", "5432")
}

func mustInt(v *viper.Viper, key, msg string) int {
	value, err := strconv.Atoi(v.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustFloat(v *viper.Viper, key, msg string) float64 {
	value, err := strconv.ParseFloat(v.GetString(key), 64)
	if err != nil {
		panic(msg)
	}

	return value
}

func mustDuration(v *viper.Viper, key, msg string) time.Duration {
	value, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
