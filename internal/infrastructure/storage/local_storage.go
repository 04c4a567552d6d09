package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
)

// LocalFilesPath is the URL prefix under which the HTTP server exposes the
// local report directory
const LocalFilesPath = "/files"

var _ apprealestate.ReportStorage = (*LocalReportStorage)(nil)

// LocalReportStorage keeps reports on the local filesystem. Download URLs are
// relative to the API host and are not signed, so expiresAt is informational.
type LocalReportStorage struct {
	dir     string
	baseURL string
	now     func() time.Time
}

// NewLocalReportStorage creates the storage, making dir if needed
func NewLocalReportStorage(dir string) (*LocalReportStorage, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalReportStorage{dir: dir, baseURL: LocalFilesPath, now: time.Now}, nil
}

// Dir returns the root directory
func (s *LocalReportStorage) Dir() string {
	return s.dir
}

// Upload writes data under key, creating intermediate directories
func (s *LocalReportStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// GenerateDownloadURL returns the path the file is served under
func (s *LocalReportStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", time.Time{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return "", time.Time{}, fmt.Errorf("report %s not found: %w", key, err)
	}
	return s.baseURL + "/" + filepath.ToSlash(key), s.now().Add(expiresIn), nil
}

func (s *LocalReportStorage) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	local := filepath.FromSlash(strings.TrimPrefix(key, "/"))
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("storage key %q escapes the storage directory", key)
	}
	return filepath.Join(s.dir, local), nil
}
