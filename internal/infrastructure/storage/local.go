package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBlobStore stores blobs on the local filesystem under a root directory.
type LocalBlobStore struct {
	rootDir string
}

func NewLocalBlobStore(rootDir string) (*LocalBlobStore, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}

	if err := os.MkdirAll(rootDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &LocalBlobStore{rootDir: rootDir}, nil
}

func (s *LocalBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	// Write to a temp file first so readers never observe partial blobs.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, io.LimitReader(r, size))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if written != size {
		os.Remove(tmpName)
		return fmt.Errorf("short write: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize blob: %w", err)
	}

	return nil
}

func (s *LocalBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %s", key)
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}

	return f, nil
}

func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	return nil
}

func (s *LocalBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}

	return true, nil
}

// resolve maps a key to an absolute path and rejects traversal outside the root.
func (s *LocalBlobStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob key: %s", key)
	}

	return filepath.Join(s.rootDir, cleaned), nil
}
