package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps blobs as files in a data directory: graph.json and
// history.json at the top level, entity records under entities/ with
// SHA-256 hashed filenames so arbitrary ids map to safe paths.
//
// Multiple processes can share a directory; the filesystem provides the
// necessary atomicity for whole-file reads and writes.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory tree if needed. If dir is empty the XDG data directory
// (~/.local/share/polynav) is used.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "entities"), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the default store directory following the XDG
// base-directory convention.
func DefaultDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "polynav"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "polynav"), nil
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) read(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) entityPath(id string) string {
	h := sha256.Sum256([]byte(id))
	return filepath.Join(s.dir, "entities", hex.EncodeToString(h[:])+".json")
}

func (s *FileStore) GetGraph(ctx context.Context) ([]byte, bool, error) {
	return s.read(filepath.Join(s.dir, "graph.json"))
}

func (s *FileStore) PutGraph(ctx context.Context, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, "graph.json"), data, 0o644)
}

func (s *FileStore) GetEntity(ctx context.Context, id string) ([]byte, bool, error) {
	return s.read(s.entityPath(id))
}

func (s *FileStore) PutEntity(ctx context.Context, id string, data []byte) error {
	return os.WriteFile(s.entityPath(id), data, 0o644)
}

func (s *FileStore) GetHistory(ctx context.Context) ([]byte, bool, error) {
	return s.read(filepath.Join(s.dir, "history.json"))
}

func (s *FileStore) PutHistory(ctx context.Context, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, "history.json"), data, 0o644)
}

func (s *FileStore) Clear(ctx context.Context) error {
	for _, name := range []string{"graph.json", "history.json"} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	entities := filepath.Join(s.dir, "entities")
	if err := os.RemoveAll(entities); err != nil {
		return err
	}
	return os.MkdirAll(entities, 0o755)
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
