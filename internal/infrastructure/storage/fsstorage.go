package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rusq/fsadapter"
)

// BlobStore persists attachment bytes under opaque keys. Metadata lives
// in the attachments table; the store only deals in content.
type BlobStore interface {
	Save(key string, r io.Reader) (int64, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
	Close() error
}

// FSStorage writes blobs through fsadapter, so the configured location
// may be a plain directory or a path ending in .zip. Zip-backed storage
// is append-only: Open and Delete work only on directories.
type FSStorage struct {
	fs       fsadapter.FSCloser
	location string
	isDir    bool
}

var _ BlobStore = (*FSStorage)(nil)

func NewFSStorage(location string) (*FSStorage, error) {
	if location == "" {
		return nil, fmt.Errorf("storage location is required")
	}

	fs, err := fsadapter.New(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", location, err)
	}

	return &FSStorage{
		fs:       fs,
		location: location,
		isDir:    !strings.HasSuffix(strings.ToLower(location), ".zip"),
	}, nil
}

// KeyFor builds the storage key for an upload. The digest prefix keeps
// keys unique when the same filename is uploaded twice to one ticket.
func KeyFor(ticketID uint, sha256, filename string) string {
	digest := sha256
	if len(digest) > 12 {
		digest = digest[:12]
	}
	return fmt.Sprintf("tickets/%d/%s_%s", ticketID, digest, filename)
}

func (s *FSStorage) Save(key string, r io.Reader) (int64, error) {
	wc, err := s.fs.Create(key)
	if err != nil {
		return 0, fmt.Errorf("failed to create blob %s: %w", key, err)
	}

	written, err := io.Copy(wc, r)
	if err != nil {
		wc.Close()
		return written, fmt.Errorf("failed to write blob %s: %w", key, err)
	}

	if err := wc.Close(); err != nil {
		return written, fmt.Errorf("failed to close blob %s: %w", key, err)
	}

	return written, nil
}

func (s *FSStorage) Open(key string) (io.ReadCloser, error) {
	if !s.isDir {
		return nil, fmt.Errorf("zip-backed storage does not support reads")
	}

	f, err := os.Open(filepath.Join(s.location, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s not found", key)
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", key, err)
	}

	return f, nil
}

func (s *FSStorage) Delete(key string) error {
	if !s.isDir {
		return fmt.Errorf("zip-backed storage does not support deletes")
	}

	if err := os.Remove(filepath.Join(s.location, filepath.FromSlash(key))); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}

	return nil
}

func (s *FSStorage) Close() error {
	return s.fs.Close()
}
