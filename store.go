package dcaplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists snapshots. Implementations live in their own packages so
// the core stays free of driver imports; FileStore below is the default.
type Store interface {
	// Load returns the last saved snapshot, or the default snapshot when
	// nothing was ever saved.
	Load(ctx context.Context) (*Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, s *Snapshot) error
}

// PriceFeed provides mark prices by ticker. The second return is false when
// the feed does not know the ticker.
type PriceFeed interface {
	Price(ticker string) (Money, bool)
}

// StaticFeed is a PriceFeed over a fixed ticker-to-price table.
type StaticFeed map[string]Money

func (f StaticFeed) Price(ticker string) (Money, bool) {
	m, ok := f[strings.ToUpper(ticker)]
	return m, ok
}

// AccessControl gates destructive operations.
type AccessControl interface {
	// CanDelete reports whether the caller may delete positions.
	CanDelete() bool
}

// EnvAccess grants deletion when the named environment variable is set to a
// non-empty value.
type EnvAccess string

func (e EnvAccess) CanDelete() bool { return os.Getenv(string(e)) != "" }

// FileStore keeps the snapshot in a single JSON file. A missing file means
// an empty default plan; a corrupt file is an error, never silently reset.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (s *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return snap, nil
}

func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	// write then rename so a crash never leaves a half-written snapshot.
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}
