package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
)

// FileStore persists the ledger as a single JSON file. Every save is a
// complete overwrite; there are no partial updates. A mutex serializes
// read-modify-write cycles, so two concurrent completions cannot both see
// the same lead as active.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewFileStore creates a store writing to the configured data file.
func NewFileStore(cfg config.StorageConfig, log *logger.Logger) *FileStore {
	return &FileStore{path: cfg.GetDataFile(), log: log}
}

// Load reads the persisted ledger. Any open, read or parse failure yields
// the empty ledger: the service stays available with no prior state rather
// than failing the request. The failure is logged and otherwise swallowed.
func (s *FileStore) Load(ctx context.Context) Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *FileStore) loadLocked(ctx context.Context) Ledger {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithContext(ctx).StorageRecovered("load", s.path, err)
		}
		return Empty()
	}

	parsed, err := decode(data)
	if err != nil {
		s.log.WithContext(ctx).StorageRecovered("load", s.path, err)
		return Empty()
	}
	return parsed
}

// decode parses the ledger file. The original service persisted a bare
// array of active leads; that legacy form is lifted into a ledger with an
// empty completed sequence.
func decode(data []byte) (Ledger, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Empty(), nil
	}

	if trimmed[0] == '[' {
		var active []Lead
		if err := json.Unmarshal(trimmed, &active); err != nil {
			return Ledger{}, fmt.Errorf("parse legacy lead list: %w", err)
		}
		out := Empty()
		out.Active = active
		return out, nil
	}

	var out Ledger
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return Ledger{}, fmt.Errorf("parse ledger: %w", err)
	}
	if out.Active == nil {
		out.Active = []Lead{}
	}
	if out.Completed == nil {
		out.Completed = []Lead{}
	}
	return out, nil
}

// Save writes the full ledger atomically: marshal to a temp file in the
// same directory, then rename over the data file.
func (s *FileStore) Save(ctx context.Context, l Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, l)
}

func (s *FileStore) saveLocked(ctx context.Context, l Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		s.log.WithContext(ctx).StorageError("save", err)
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.log.WithContext(ctx).StorageError("save", err)
		return fmt.Errorf("write ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		s.log.WithContext(ctx).StorageError("save", err)
		return fmt.Errorf("close ledger file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		s.log.WithContext(ctx).StorageError("save", err)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// Update runs a load-modify-store cycle under the store's mutex. The
// callback mutates the loaded ledger in place; returning an error aborts
// the cycle without writing.
func (s *FileStore) Update(ctx context.Context, fn func(*Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.loadLocked(ctx)
	if err := fn(&l); err != nil {
		return err
	}
	return s.saveLocked(ctx, l)
}
