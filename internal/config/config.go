package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the editor's settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Prompt  PromptConfig  `toml:"prompt" yaml:"prompt"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds core editing settings.
type EditorConfig struct {
	// ContextRadius is the default number of lines shown on each side of
	// the cursor by the context command.
	ContextRadius int `toml:"context_radius" yaml:"context_radius"`
}

// PromptConfig holds the per-mode prompt symbols.
type PromptConfig struct {
	Command string `toml:"command" yaml:"command"`
	Edit    string `toml:"edit" yaml:"edit"`
	Insert  string `toml:"insert" yaml:"insert"`
}

// HistoryConfig controls persistent input history.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
	Max     int    `toml:"max" yaml:"max"`
}

// LoggingConfig controls the session log. Path empty means stderr; the
// interactive session owns stdout.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	Path  string `toml:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			ContextRadius: 2,
		},
		Prompt: PromptConfig{
			Command: ">",
			Edit:    "#",
			Insert:  "+",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    defaultHistoryPath(),
			Max:     10000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the editor cannot run with.
func (c *Config) Validate() error {
	if c.Editor.ContextRadius < 0 {
		return fmt.Errorf("editor.context_radius must be >= 0, got %d", c.Editor.ContextRadius)
	}
	if c.History.Max <= 0 {
		return fmt.Errorf("history.max must be > 0, got %d", c.History.Max)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poe_history"
	}
	return filepath.Join(home, ".poe_history")
}
