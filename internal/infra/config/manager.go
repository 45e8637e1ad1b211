package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/todolist/todo-client/internal/domain"
)

// Manager inspects and initializes the config file.
type Manager struct {
	loader *Loader
}

// NewManager creates a Manager for the loader's directory.
func NewManager(loader *Loader) *Manager {
	return &Manager{loader: loader}
}

// Info returns the config file path and content.
func (m *Manager) Info() domain.ConfigInfo {
	path := m.loader.Path()
	if path == "" {
		return domain.ConfigInfo{}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// Init writes the commented template. It refuses to overwrite unless force is set.
func (m *Manager) Init(force bool) (string, error) {
	path := m.loader.Path()
	if path == "" {
		return "", domain.ErrNoConfigDir
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, domain.ErrConfigExists
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("stat config: %w", err)
		}
	}

	if err := os.MkdirAll(m.loader.Dir(), 0o700); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(domain.ConfigTemplate), 0o600); err != nil {
		return path, fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
