// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// DefaultSQLiteConnectionString is the default local store, relative to the working directory.
const DefaultSQLiteConnectionString = "file:clinicnotes.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Config holds all application configuration.
type Config struct {
	// DBDriver is the database driver to use ("sqlite", "postgres" or "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// KdfMemoryKiB, KdfIterations and KdfParallelism are the Argon2id cost stamped
	// on new accounts. Existing accounts always use their stored parameters.
	KdfMemoryKiB   uint32
	KdfIterations  uint32
	KdfParallelism uint32

	// SessionCacheDek keeps the unlocked DEK in an encrypted in-memory keyring for
	// the lifetime of an interactive shell.
	SessionCacheDek bool

	// AuthAttemptsPerMinute is the sustained rate of password attempts per process.
	AuthAttemptsPerMinute int
	// AuthAttemptsBurst is the number of attempts allowed before throttling starts.
	AuthAttemptsBurst int

	// NotesDecryptWorkers bounds concurrent record decryption when listing notes.
	NotesDecryptWorkers int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsHost is the address the metrics server binds to.
	MetricsHost string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", "sqlite"),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", DefaultSQLiteConnectionString),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Key derivation for new accounts
		KdfMemoryKiB:   getUint32("KDF_MEMORY_KIB", cryptoDomain.DefaultKdfMemoryKiB),
		KdfIterations:  getUint32("KDF_ITERATIONS", cryptoDomain.DefaultKdfIterations),
		KdfParallelism: getUint32("KDF_PARALLELISM", cryptoDomain.DefaultKdfParallelism),

		// Session
		SessionCacheDek:       env.GetBool("SESSION_CACHE_DEK", true),
		AuthAttemptsPerMinute: env.GetInt("AUTH_ATTEMPTS_PER_MINUTE", 10),
		AuthAttemptsBurst:     env.GetInt("AUTH_ATTEMPTS_BURST", 5),

		// Notes
		NotesDecryptWorkers: env.GetInt("NOTES_DECRYPT_WORKERS", 4),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "clinicnotes"),
		MetricsHost:      env.GetString("METRICS_HOST", "127.0.0.1"),
		MetricsPort:      env.GetInt("METRICS_PORT", 9464),
	}
}

// KdfCost returns the configured Argon2id cost for new accounts.
func (c *Config) KdfCost() cryptoDomain.KdfCost {
	return cryptoDomain.KdfCost{
		MemoryKiB:   c.KdfMemoryKiB,
		Iterations:  c.KdfIterations,
		Parallelism: c.KdfParallelism,
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// getUint32 reads an unsigned value. Negative or oversized values become 0, which
// KdfCost.Validate rejects.
func getUint32(key string, defaultValue uint32) uint32 {
	v := env.GetInt(key, int(defaultValue))
	if v < 0 || uint64(v) > uint64(^uint32(0)) {
		return 0
	}
	return uint32(v)
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
