package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/cliquekit/cliquekit/pkg/errors"
)

// Config holds persistent CLI settings loaded from a TOML file. Every field
// has a zero value that means "use the built-in default", so a missing or
// empty config file is valid.
//
// Example ~/.config/cliquekit/config.toml:
//
//	[search]
//	trials = 5000
//	workers = 8
//	noise = 12.5
//
//	[search.weights]
//	random = 1
//	noise = 2
//	neighborhood = 1
//
//	[redis]
//	addr = "localhost:6379"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
type Config struct {
	Search SearchConfig `toml:"search"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig sets default search parameters.
type SearchConfig struct {
	Trials  int           `toml:"trials"`
	Workers int           `toml:"workers"`
	Noise   float64       `toml:"noise"`
	Weights WeightsConfig `toml:"weights"`
}

// WeightsConfig sets the default strategy mix.
type WeightsConfig struct {
	Random       int `toml:"random"`
	Noise        int `toml:"noise"`
	Neighborhood int `toml:"neighborhood"`
}

// RedisConfig enables the Redis cache backend when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig enables MongoDB-backed run history when URI is set.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig sets defaults for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfigPath returns the config file location using the XDG standard
// (~/.config/cliquekit/config.toml).
func DefaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// LoadConfig reads a TOML config file. A missing file returns the zero
// config without an error; a malformed one returns an INVALID_CONFIG error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}
	return cfg, nil
}
