package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// HTTP server settings, logging, upstream data providers and the optional
// Postgres-backed watchlist.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	FMP_API_KEY=xxxx
//	FINNHUB_API_KEY=xxxx
//	ALPHA_VANTAGE_API_KEY=xxxx
//	PROVIDER_TIMEOUT_MS=10000
//	WATCHLIST_ENABLED=true
//	POSTGRES_HOST=localhost
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Log       LogConfig       // Logger level and format
	Providers ProvidersConfig // Upstream financial data APIs
	Watchlist WatchlistConfig // Optional watchlist persistence
	Postgres  PostgresConfig  // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMin int           // Inbound requests allowed per client IP per minute
	RequestTimeout  time.Duration // Deadline attached to every inbound request
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// ProviderConfig describes one upstream API.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

// ProvidersConfig groups the upstream APIs and the limits applied to every call.
//
// Fields:
//   - Timeout: per-call deadline (PROVIDER_TIMEOUT_MS).
//   - MaxParallel: how many provider calls a single request may run at once.
//   - RatePerSecond: client-side outbound rate per provider.
type ProvidersConfig struct {
	FMP           ProviderConfig
	Finnhub       ProviderConfig
	AlphaVantage  ProviderConfig
	CNN           ProviderConfig
	Timeout       time.Duration
	MaxParallel   int
	RatePerSecond int
}

// WatchlistConfig toggles the Postgres-backed watchlist endpoints.
//
// Fields:
//   - Enabled: mount a working watchlist; otherwise the endpoints answer 503.
//   - AutoMigrate: apply the embedded goose migrations at startup.
type WatchlistConfig struct {
	Enabled     bool
	AutoMigrate bool
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// MissingConfigError lists the required keys that resolved to empty values.
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Keys, ", ")
}

// setDefaults registers every default on the given viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("API_RATE_LIMIT_PER_MIN", 60)
	v.SetDefault("REQUEST_TIMEOUT_MS", 30000)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("FMP_BASE_URL", "https://financialmodelingprep.com")
	v.SetDefault("FINNHUB_BASE_URL", "https://finnhub.io/api/v1")
	v.SetDefault("ALPHA_VANTAGE_BASE_URL", "https://www.alphavantage.co")
	v.SetDefault("CNN_BASE_URL", "https://production.dataviz.cnn.io")
	v.SetDefault("FMP_API_KEY", "")
	v.SetDefault("FINNHUB_API_KEY", "")
	v.SetDefault("ALPHA_VANTAGE_API_KEY", "")
	v.SetDefault("PROVIDER_TIMEOUT_MS", 10000)
	v.SetDefault("PROVIDER_MAX_PARALLEL", 8)
	v.SetDefault("PROVIDER_RATE_PER_SEC", 5)

	v.SetDefault("WATCHLIST_ENABLED", false)
	v.SetDefault("WATCHLIST_AUTO_MIGRATE", true)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "stockscope")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
}

// Load builds a Config by reading from .env file or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in setDefaults.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// The returned value is meant to be constructed once at process start and passed
// by reference to the components that need it; nothing in the request path reads
// the environment again.
//
// Returns:
//   - Config: the populated configuration (also returned alongside a validation error).
//   - error: *MissingConfigError when required keys are empty.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore error if no .env

	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			RateLimitPerMin: v.GetInt("API_RATE_LIMIT_PER_MIN"),
			RequestTimeout:  time.Duration(v.GetInt("REQUEST_TIMEOUT_MS")) * time.Millisecond,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Providers: ProvidersConfig{
			FMP:           ProviderConfig{BaseURL: v.GetString("FMP_BASE_URL"), APIKey: v.GetString("FMP_API_KEY")},
			Finnhub:       ProviderConfig{BaseURL: v.GetString("FINNHUB_BASE_URL"), APIKey: v.GetString("FINNHUB_API_KEY")},
			AlphaVantage:  ProviderConfig{BaseURL: v.GetString("ALPHA_VANTAGE_BASE_URL"), APIKey: v.GetString("ALPHA_VANTAGE_API_KEY")},
			CNN:           ProviderConfig{BaseURL: v.GetString("CNN_BASE_URL")},
			Timeout:       time.Duration(v.GetInt("PROVIDER_TIMEOUT_MS")) * time.Millisecond,
			MaxParallel:   v.GetInt("PROVIDER_MAX_PARALLEL"),
			RatePerSecond: v.GetInt("PROVIDER_RATE_PER_SEC"),
		},
		Watchlist: WatchlistConfig{
			Enabled:     v.GetBool("WATCHLIST_ENABLED"),
			AutoMigrate: v.GetBool("WATCHLIST_AUTO_MIGRATE"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
	}

	cfg.Postgres.URL = cfg.Postgres.DSN()

	return cfg, cfg.Validate()
}

// DSN renders the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Validate ensures required variables are present.
//
// Behavior:
//   - Checks each critical field of the Config.
//   - Postgres fields are only required when the watchlist is enabled.
//   - Collects missing ones and reports them together.
func (c Config) Validate() error {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Providers.Timeout <= 0 {
		missing = append(missing, "PROVIDER_TIMEOUT_MS")
	}
	if c.Providers.MaxParallel <= 0 {
		missing = append(missing, "PROVIDER_MAX_PARALLEL")
	}
	if c.Watchlist.Enabled {
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}

	if len(missing) > 0 {
		return &MissingConfigError{Keys: missing}
	}
	return nil
}

// UnkeyedProviders names the keyed providers that have no API key configured.
// Calls to them fail fast without touching the network.
func (c Config) UnkeyedProviders() []string {
	var out []string
	if c.Providers.FMP.APIKey == "" {
		out = append(out, "FMP_API_KEY")
	}
	if c.Providers.Finnhub.APIKey == "" {
		out = append(out, "FINNHUB_API_KEY")
	}
	if c.Providers.AlphaVantage.APIKey == "" {
		out = append(out, "ALPHA_VANTAGE_API_KEY")
	}
	return out
}
