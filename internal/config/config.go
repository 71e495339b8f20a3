package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// EnvAurqHome is the environment variable to override the default aurq home directory
	EnvAurqHome = "AURQ_HOME"

	// EnvAURURL is the environment variable to point aurq at a different AUR instance
	EnvAURURL = "AURQ_AUR_URL"

	// EnvAPITimeout is the environment variable to configure the per-lookup timeout
	EnvAPITimeout = "AURQ_API_TIMEOUT"

	// EnvMaxBatchSize is the environment variable to configure how many names go in one RPC call
	EnvMaxBatchSize = "AURQ_MAX_BATCH_SIZE"

	// EnvMaxConnections is the environment variable to configure how many RPC calls run at once
	EnvMaxConnections = "AURQ_MAX_CONNECTIONS"

	// DefaultAURURL is the public Arch User Repository
	DefaultAURURL = "https://aur.archlinux.org"

	// DefaultAPITimeout is the default timeout for a whole lookup (30 seconds)
	DefaultAPITimeout = 30 * time.Second

	// DefaultMaxBatchSize is the default number of names per RPC call
	DefaultMaxBatchSize = 100

	// DefaultMaxConnections is the default number of concurrent RPC calls
	DefaultMaxConnections = 5
)

// Accepted ranges for the numeric settings.
const (
	MinAPITimeout     = 1 * time.Second
	MaxAPITimeout     = 10 * time.Minute
	MinMaxBatchSize   = 1
	MaxMaxBatchSize   = 1000
	MinMaxConnections = 1
	MaxMaxConnections = 64
)

// GetAPITimeout returns the configured lookup timeout from AURQ_API_TIMEOUT.
// If not set or invalid, returns DefaultAPITimeout (30 seconds).
// Accepts duration strings like "30s", "1m", "2m30s".
func GetAPITimeout() time.Duration {
	envValue := os.Getenv(EnvAPITimeout)
	if envValue == "" {
		return DefaultAPITimeout
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			EnvAPITimeout, envValue, DefaultAPITimeout)
		return DefaultAPITimeout
	}

	return ClampAPITimeout(EnvAPITimeout, duration)
}

// ClampAPITimeout bounds d to [MinAPITimeout, MaxAPITimeout], warning on
// stderr under the given source name when it has to adjust.
func ClampAPITimeout(source string, d time.Duration) time.Duration {
	if d < MinAPITimeout {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum %v\n",
			source, d, MinAPITimeout)
		return MinAPITimeout
	}
	if d > MaxAPITimeout {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum %v\n",
			source, d, MaxAPITimeout)
		return MaxAPITimeout
	}
	return d
}

// GetAURURL returns the AUR base URL from AURQ_AUR_URL.
// If not set or not an absolute http(s) URL, returns DefaultAURURL.
func GetAURURL() string {
	envValue := strings.TrimSpace(os.Getenv(EnvAURURL))
	if envValue == "" {
		return DefaultAURURL
	}
	if err := ValidateAURURL(envValue); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q (%v), using default %s\n",
			EnvAURURL, envValue, err, DefaultAURURL)
		return DefaultAURURL
	}
	return strings.TrimSuffix(envValue, "/")
}

// ValidateAURURL checks that raw is an absolute http or https URL with a host.
func ValidateAURURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// GetMaxBatchSize returns the per-call name limit from AURQ_MAX_BATCH_SIZE.
// If not set or invalid, returns DefaultMaxBatchSize (100).
func GetMaxBatchSize() int {
	return getIntEnv(EnvMaxBatchSize, DefaultMaxBatchSize, MinMaxBatchSize, MaxMaxBatchSize)
}

// GetMaxConnections returns the concurrent call limit from AURQ_MAX_CONNECTIONS.
// If not set or invalid, returns DefaultMaxConnections (5).
func GetMaxConnections() int {
	return getIntEnv(EnvMaxConnections, DefaultMaxConnections, MinMaxConnections, MaxMaxConnections)
}

func getIntEnv(name string, def, lo, hi int) int {
	envValue := os.Getenv(name)
	if envValue == "" {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(envValue))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %d\n",
			name, envValue, def)
		return def
	}

	return ClampInt(name, n, lo, hi)
}

// ClampInt bounds n to [lo, hi], warning on stderr under the given source
// name when it has to adjust.
func ClampInt(source string, n, lo, hi int) int {
	if n < lo {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%d), using minimum %d\n", source, n, lo)
		return lo
	}
	if n > hi {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%d), using maximum %d\n", source, n, hi)
		return hi
	}
	return n
}

// Config holds aurq's on-disk locations
type Config struct {
	HomeDir    string // $AURQ_HOME
	ConfigFile string // $AURQ_HOME/config.toml
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	aurqHome := os.Getenv(EnvAurqHome)
	if aurqHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		aurqHome = filepath.Join(home, ".aurq")
	}

	return &Config{
		HomeDir:    aurqHome,
		ConfigFile: filepath.Join(aurqHome, "config.toml"),
	}, nil
}

// EnsureDirectories creates the home directory
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.HomeDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.HomeDir, err)
	}
	return nil
}
