package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalService stores photos on the local filesystem under a single uploads
// directory. Stored paths look like "/uploads/<name>" and are served
// statically by the HTTP layer.
type LocalService struct {
	dir string
}

func NewLocalService(dir string) (*LocalService, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalService{dir: dir}, nil
}

// Dir returns the directory photos are written to.
func (s *LocalService) Dir() string {
	return s.dir
}

func (s *LocalService) SavePhoto(_ context.Context, name string, r io.Reader, _ SaveOptions) (string, error) {
	name = filepath.Base(strings.Trim(name, "/"))
	if name == "" || name == "." {
		return "", fmt.Errorf("object name is required")
	}

	dest := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}

	return "/uploads/" + name, nil
}

// PhotoURL returns the stored path unchanged; local paths are already
// resolvable against the API origin.
func (s *LocalService) PhotoURL(_ context.Context, stored string, _ time.Duration) (string, error) {
	if !strings.HasPrefix(stored, "/uploads/") {
		return "", fmt.Errorf("invalid local photo path")
	}
	return stored, nil
}

var _ Service = (*LocalService)(nil)
