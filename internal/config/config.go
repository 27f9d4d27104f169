// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// SigningSecret is the base64-encoded secret used to sign session
	// credentials and capability hashes. Required, never hard-coded.
	SigningSecret string

	// TokenTTL is the default lifetime of a minted session credential.
	TokenTTL time.Duration

	// TokenIssuer is the issuer claim embedded in session credentials.
	TokenIssuer string

	// DerivationIterations is the PBKDF2 iteration count used when deriving
	// per-tenant encryption keys from the master key.
	DerivationIterations int

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength int

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string

	// KMSProvider is the KMS provider to use (e.g., "google", "aws", "azure").
	KMSProvider string
	// KMSKeyURI is the URI for the key that wraps the master keys in the KMS.
	KMSKeyURI string

	// MasterKeys is a comma-separated list of "id:base64" master key entries.
	// When KMSKeyURI is set, the base64 payload is KMS ciphertext.
	MasterKeys string
	// ActiveMasterKeyID selects the master key used for new encryptions.
	ActiveMasterKeyID string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Session credentials
		SigningSecret: env.GetString("SIGNING_SECRET", ""),
		TokenTTL:      env.GetDuration("TOKEN_TTL_SECONDS", 3600, time.Second),
		TokenIssuer:   env.GetString("TOKEN_ISSUER", "tenantguard"),

		// Tenant key derivation
		DerivationIterations: env.GetInt("DERIVATION_ITERATIONS", 100000),

		// Password policy
		PasswordMinLength: env.GetInt("PASSWORD_MIN_LENGTH", 8),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "tenantguard"),

		// KMS configuration
		KMSProvider: env.GetString("KMS_PROVIDER", ""),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),

		// Master keys
		MasterKeys:        env.GetString("MASTER_KEYS", ""),
		ActiveMasterKeyID: env.GetString("ACTIVE_MASTER_KEY_ID", ""),
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
