// Package userconfig provides user configuration management for aurq.
// Configuration is stored in $AURQ_HOME/config.toml and can be modified
// via the `aurq config` command. Unset keys leave the environment or
// built-in defaults in effect.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tsukumogami/aurq/internal/config"
)

// Config represents user-configurable settings.
// Zero values mean "not set".
type Config struct {
	// AURURL is the base URL of the AUR instance to query.
	AURURL string `toml:"aur_url,omitempty"`

	// MaxBatchSize caps how many names go into one RPC call.
	MaxBatchSize int `toml:"max_batch_size,omitzero"`

	// MaxConnections caps how many RPC calls run at once.
	MaxConnections int `toml:"max_connections,omitzero"`

	// Timeout bounds a whole lookup, as a duration string ("30s", "1m").
	Timeout string `toml:"timeout,omitempty"`
}

// DefaultConfig returns a Config with nothing set.
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads the config file and returns the configuration.
// Returns default values if the file doesn't exist.
// Returns an error only for file parsing issues, not missing files.
func Load() (*Config, error) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return DefaultConfig(), nil
	}

	return loadFromPath(cfg.ConfigFile)
}

func loadFromPath(path string) (*Config, error) {
	userCfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return userCfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), userCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return userCfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	cfg, err := config.DefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.saveToPath(cfg.ConfigFile)
}

// saveToPath writes through a temp file in the same directory and renames
// it into place, so a crash never leaves a half-written config.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	if err := toml.NewEncoder(tmp).Encode(c); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Get returns the value of a config key as a string.
// Returns empty string and false if the key doesn't exist.
// A known but unset key returns an empty string and true.
func (c *Config) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "aur_url":
		return c.AURURL, true
	case "max_batch_size":
		return formatInt(c.MaxBatchSize), true
	case "max_connections":
		return formatInt(c.MaxConnections), true
	case "timeout":
		return c.Timeout, true
	default:
		return "", false
	}
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Set updates a config value from a string. An empty value unsets the key.
// Returns an error if the key doesn't exist or the value is invalid.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case "aur_url":
		if value != "" {
			if err := config.ValidateAURURL(value); err != nil {
				return fmt.Errorf("invalid value for aur_url: %w", err)
			}
		}
		c.AURURL = strings.TrimSuffix(value, "/")
		return nil
	case "max_batch_size":
		n, err := parseBounded(key, value, config.MinMaxBatchSize, config.MaxMaxBatchSize)
		if err != nil {
			return err
		}
		c.MaxBatchSize = n
		return nil
	case "max_connections":
		n, err := parseBounded(key, value, config.MinMaxConnections, config.MaxMaxConnections)
		if err != nil {
			return err
		}
		c.MaxConnections = n
		return nil
	case "timeout":
		if value != "" {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid value for timeout: must be a duration like 30s or 1m")
			}
			if d < config.MinAPITimeout || d > config.MaxAPITimeout {
				return fmt.Errorf("invalid value for timeout: must be between %v and %v",
					config.MinAPITimeout, config.MaxAPITimeout)
			}
		}
		c.Timeout = value
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

func parseBounded(key, value string, lo, hi int) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid value for %s: must be an integer between %d and %d", strings.ToLower(key), lo, hi)
	}
	return n, nil
}

// TimeoutDuration returns the parsed timeout, or false when unset or invalid.
func (c *Config) TimeoutDuration() (time.Duration, bool) {
	if c.Timeout == "" {
		return 0, false
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, false
	}
	return d, true
}

// AvailableKeys returns a list of all configurable keys with descriptions.
func AvailableKeys() map[string]string {
	return map[string]string{
		"aur_url":         "Base URL of the AUR instance (default " + config.DefaultAURURL + ")",
		"max_batch_size":  fmt.Sprintf("Package names per RPC call, %d-%d (default %d)", config.MinMaxBatchSize, config.MaxMaxBatchSize, config.DefaultMaxBatchSize),
		"max_connections": fmt.Sprintf("Concurrent RPC calls, %d-%d (default %d)", config.MinMaxConnections, config.MaxMaxConnections, config.DefaultMaxConnections),
		"timeout":         fmt.Sprintf("Timeout for a whole lookup, e.g. 30s (default %v)", config.DefaultAPITimeout),
	}
}

// SortedKeys returns AvailableKeys' names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(AvailableKeys()))
	for k := range AvailableKeys() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
