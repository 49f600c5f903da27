package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from the config file. Flags always win
// over config values; config values win over built-in defaults.
type Config struct {
	// Python is the default interpreter whose environment to inspect.
	Python string `toml:"python"`

	// Format is the default output format list (comma-separated).
	Format string `toml:"format"`

	// RankDir is the default Graphviz layout direction.
	RankDir string `toml:"rankdir"`

	// Labels is the default node label mode ("full" or "name").
	Labels string `toml:"labels"`

	// Exclude lists packages hidden from every graph (pip, setuptools, ...).
	Exclude []string `toml:"exclude"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig enables the Redis cache backend when Addr is set.
type RedisConfig struct {
	Addr string `toml:"addr"`
}

// configPath returns the config file location using the XDG standard
// (~/.config/pipgraph/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file. A missing file is not an error and
// yields the zero config; a malformed file is reported.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
