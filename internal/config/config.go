// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "todo.toml"

// Config holds the full configuration for a todo session.
type Config struct {
	Theme       string `toml:"theme"`
	Labels      string `toml:"labels"`
	KeyPolicy   string `toml:"key_policy"`
	RejectEmpty bool   `toml:"reject_empty"`
	CharLimit   int    `toml:"char_limit"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
}

func Default() Config {
	return Config{
		Theme:     "classic",
		Labels:    "en",
		KeyPolicy: string(store.KeyCounter),
		CharLimit: 200,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Override adjusts a loaded config before it is validated.
type Override func(*Config)

// Load reads path on top of the defaults, then applies TODO_* environment
// overrides, then overrides in order, and validates the result. An empty path
// means DefaultFileName in the working directory, which may be missing.
func Load(path string, overrides ...Override) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		} else {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg = FromEnv(cfg)
	for _, o := range overrides {
		o(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv overrides fields of base with TODO_* environment variables.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("TODO_THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := getEnv("TODO_LABELS"); ok {
		cfg.Labels = v
	}
	if v, ok := getEnv("TODO_KEY_POLICY"); ok {
		cfg.KeyPolicy = v
	}
	if v, ok := getEnvBool("TODO_REJECT_EMPTY"); ok {
		cfg.RejectEmpty = v
	}
	if v, ok := getEnvInt("TODO_CHAR_LIMIT"); ok && v > 0 {
		cfg.CharLimit = v
	}
	if v, ok := getEnv("TODO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("TODO_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnv("TODO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func (c Config) Validate() error {
	if _, err := ui.ThemeByName(c.Theme); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := ui.LabelsByName(c.Labels); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := store.ParseKeyPolicy(c.KeyPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.CharLimit <= 0 {
		return fmt.Errorf("config: char_limit must be positive, got %d", c.CharLimit)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormatter(c.LogFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// StoreOptions translates the store-related fields into store options.
func (c Config) StoreOptions() []store.Option {
	p, err := store.ParseKeyPolicy(c.KeyPolicy)
	if err != nil {
		p = store.KeyCounter
	}
	opts := []store.Option{store.WithKeyPolicy(p)}
	if c.RejectEmpty {
		opts = append(opts, store.WithRejectEmpty())
	}
	return opts
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
