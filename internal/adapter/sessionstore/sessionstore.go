package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/spf13/afero"
)

var _ port.SessionStore = (*FileStore)(nil)

type sessionPayload struct {
	UserID     string `json:"user_id"`
	RetailerID string `json:"retailer_id"`
	Role       string `json:"role"`
}

// A FileStore persists the session keys (user_id, retailer_id, role) as
// a JSON file: the local-storage analog with explicit load/save/clear
// boundaries. The filesystem is abstracted for tests.
type FileStore struct {
	fs   afero.Fs
	path string
}

func NewFileStore(fs afero.Fs, path string) FileStore {
	return FileStore{fs, path}
}

// Load reads the persisted state. A missing file is a logged-out
// session, not an error.
func (s FileStore) Load() (domain.SessionState, error) {
	const op = "FileStore.Load"

	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.SessionState{}, nil
		}
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	var p sessionPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.SessionState{
		UserID:     p.UserID,
		RetailerID: p.RetailerID,
		Role:       p.Role,
	}, nil
}

func (s FileStore) Save(state domain.SessionState) error {
	const op = "FileStore.Save"

	p := sessionPayload{
		UserID:     state.UserID,
		RetailerID: state.RetailerID,
		Role:       state.Role,
	}
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := afero.WriteFile(s.fs, s.path, b, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (s FileStore) Clear() error {
	const op = "FileStore.Clear"

	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
