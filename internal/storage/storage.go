package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage defines the interface for attachment file operations
type Storage interface {
	// Save stores a file under the given name
	Save(ctx context.Context, name string, reader io.Reader) error

	// Delete removes a stored file; a missing file is not an error
	Delete(ctx context.Context, name string) error

	// Path returns the path recorded in the metadata row (e.g. "uploads/<name>")
	Path(name string) string

	// URL returns the public URL the file is served at
	URL(name string) string
}

// Config holds storage configuration
type Config struct {
	Type     string // only "local" is supported
	BasePath string
	BaseURL  string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
