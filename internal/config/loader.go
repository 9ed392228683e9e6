package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override file
// settings.
const EnvPrefix = "POE_"

// Load reads configuration from path, then applies the POE_* environment
// overlay on top. The format is chosen by extension: .yaml/.yml parses as
// YAML, anything else as TOML. A missing file is not an error; defaults
// are used. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return nil
}

// applyEnv overrides settings from POE_* environment variables. The
// overlay is applied last, so it wins over file values.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "CONTEXT_RADIUS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.ContextRadius = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PROMPT_COMMAND"); ok {
		cfg.Prompt.Command = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PROMPT_EDIT"); ok {
		cfg.Prompt.Edit = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "PROMPT_INSERT"); ok {
		cfg.Prompt.Insert = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HISTORY"); ok {
		cfg.History.Enabled = parseBool(v, cfg.History.Enabled)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HISTORY_PATH"); ok {
		cfg.History.Path = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HISTORY_MAX"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.Max = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_PATH"); ok {
		cfg.Logging.Path = v
	}
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
