package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
	NewRelic  NewRelicConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string

	// Trip and profile defaults stamped on new records
	DefaultAvatarURL    string
	VehicleImageURL     string
	DefaultDriverRating float64
	MaxSeats            int
	Timezone            string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int // seconds
	WriteTimeout    int // seconds
	ShutdownTimeout int // seconds
}

// StorageConfig selects the blob store backend and tunes its write retries
type StorageConfig struct {
	Driver         string // memory, redis or postgres
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL     string
	Enabled bool
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// RateLimitConfig throttles the credential endpoints per client IP.
// It needs Redis regardless of the storage driver.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Period  time.Duration
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	Enabled     bool
	AppName     string
	LicenseKey  string
	ForwardLogs bool
}
