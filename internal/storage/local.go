package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage for the local filesystem.
// The base directory is (re)created on every Save.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(cfg Config) *LocalStorage {
	if cfg.BasePath == "" {
		cfg.BasePath = "uploads"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/uploads"
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (s *LocalStorage) BasePath() string {
	return s.basePath
}

func (s *LocalStorage) ensureDir() error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

func (s *LocalStorage) fullPath(name string) string {
	// Имя генерируется сервером, но отсекаем любые компоненты пути
	return filepath.Join(s.basePath, filepath.Base(name))
}

// Save stores a file locally
func (s *LocalStorage) Save(ctx context.Context, name string, reader io.Reader) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	file, err := os.Create(s.fullPath(name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		os.Remove(s.fullPath(name))
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Delete removes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := os.Remove(s.fullPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Path returns the slash-separated path stored in Adjunto.ruta_archivo
func (s *LocalStorage) Path(name string) string {
	return filepath.ToSlash(s.fullPath(name))
}

// URL returns the public URL for the file
func (s *LocalStorage) URL(name string) string {
	return s.baseURL + "/" + path.Base(name)
}
