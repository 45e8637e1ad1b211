// Package credstore persists the credential record in a TOML file.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/todolist/todo-client/internal/domain"
)

// Ensure Store implements domain.CredentialStore.
var _ domain.CredentialStore = (*Store)(nil)

// ErrNoConfigDir is returned when the store directory is not an absolute path.
var ErrNoConfigDir = errors.New("credential directory must be an absolute path")

// Store implements CredentialStore on a single file readable only by the owner.
type Store struct {
	filePath string
}

// NewStore creates a store under dir (typically ~/.config/todo).
func NewStore(dir string) (*Store, error) {
	if dir == "" || !filepath.IsAbs(dir) {
		return nil, ErrNoConfigDir
	}
	return &Store{filePath: domain.CredentialsPath(dir)}, nil
}

// Path returns the credential file path.
func (s *Store) Path() string {
	return s.filePath
}

// Load reads the credential record.
// A missing file yields empty credentials. A record with only one of the
// two fields is treated as absent.
func (s *Store) Load() (domain.Credentials, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Credentials{}, nil
		}
		return domain.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var creds domain.Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return domain.Credentials{}, domain.ErrInvalidCredentials
	}
	if !creds.Valid() {
		return domain.Credentials{}, nil
	}
	return creds, nil
}

// Save writes token and username together.
func (s *Store) Save(creds domain.Credentials) error {
	// Directory is private to the user (0700)
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	data, err := toml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	// Write to temp file first, then rename so both fields land together
	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Clear removes the record. Clearing an absent record is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
