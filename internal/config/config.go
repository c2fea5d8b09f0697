// Package config resolves where tasks live and how the programs log.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	appName         = "listopia"
	projectFileName = "listopia.toml"
	userFileName    = "config.toml"
)

type Config struct {
	// File is the JSON task file.
	File string `toml:"file"`
	Log  Log    `toml:"log"`
}

type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output instead of stderr when set.
	File        string `toml:"file"`
	Development bool   `toml:"development"`
}

func Default() *Config {
	return &Config{
		File: "tasks.json",
		Log: Log{
			Level: "warn",
		},
	}
}

// Load builds the configuration from, in increasing priority: defaults,
// TOML files and LISTOPIA_* environment variables. An explicit path must
// exist and is the only file read. Without one, the user config
// ($XDG_CONFIG_HOME/listopia/config.toml) and then ./listopia.toml are
// layered when present. Command line flags are applied by the caller.
func Load(path string) (*Config, error) {
	cfg := Default()

	files := []string{path}
	if path == "" {
		files = findConfigFiles()
	}
	for _, f := range files {
		if _, err := toml.DecodeFile(f, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", f, err)
		}
	}

	if err := loadFromEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("config: task file path is empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

func findConfigFiles() []string {
	candidates := []string{}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appName, userFileName))
	}
	candidates = append(candidates, projectFileName)

	found := []string{}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			found = append(found, c)
		}
	}
	return found
}

func loadFromEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("LISTOPIA_FILE"); ok && v != "" {
		cfg.File = v
	}
	if v, ok := lookup("LISTOPIA_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LISTOPIA_LOG_FILE"); ok && v != "" {
		cfg.Log.File = v
	}
	if v, ok := lookup("LISTOPIA_DEV"); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LISTOPIA_DEV: %w", err)
		}
		cfg.Log.Development = dev
	}
	return nil
}
