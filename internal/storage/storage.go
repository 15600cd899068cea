package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DocumentStore persists binary document payloads and returns an opaque
// reference; the rest of the platform only ever checks reference presence.
type DocumentStore interface {
	Save(kind string, filename string, r io.Reader) (ref string, err error)
}

// DiskStore is the development default, writing under a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(kind string, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s_%s", kind, uuid.New().String(), filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write document file: %w", err)
	}

	return name, nil
}
