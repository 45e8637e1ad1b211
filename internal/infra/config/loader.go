// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/todolist/todo-client/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from the TOML file in the config directory.
// Fields are ordered to minimize memory padding.
type Loader struct {
	getenv  func(string) string
	confDir string // e.g. ~/.config/todo
}

// NewLoader creates a Loader for the default config directory.
func NewLoader() *Loader {
	return NewLoaderWithDir(DefaultDir())
}

// NewLoaderWithDir creates a Loader reading from confDir.
// This is useful for testing.
func NewLoaderWithDir(confDir string) *Loader {
	return &Loader{
		confDir: confDir,
		getenv:  os.Getenv,
	}
}

// DefaultDir returns the default config directory, honoring XDG_CONFIG_HOME.
// It returns "" when no home directory can be determined.
func DefaultDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Dir returns the config directory.
func (l *Loader) Dir() string {
	return l.confDir
}

// Path returns the config file path.
func (l *Loader) Path() string {
	if l.confDir == "" {
		return ""
	}
	return filepath.Join(l.confDir, domain.ConfigFileName)
}

// Load returns the configuration: defaults <- file <- TODO_API_URL.
// A missing file is not an error. Unknown keys are reported in Config.Warnings.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if path := l.Path(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if v := strings.TrimSpace(l.getenv(domain.APIURLEnv)); v != "" {
		cfg.API.BaseURL = v
	}
	return cfg, nil
}

// decode fills cfg from data. Unknown keys do not fail the load; they are
// collected as warnings the way a strict decode reports them.
func decode(data []byte, cfg *domain.Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return err
	}
	// The strict pass stops at unknown keys; decode again leniently.
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	for _, e := range strict.Errors {
		cfg.Warnings = append(cfg.Warnings, "unknown key: "+strings.Join(e.Key(), "."))
	}
	return nil
}
