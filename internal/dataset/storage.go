package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorage keeps the raw bytes of accepted uploads
type FileStorage interface {
	Store(ctx context.Context, src io.Reader, filename string) (string, error)
	Delete(ctx context.Context, filePath string) error
	Exists(ctx context.Context, filePath string) (bool, error)
}

// LocalFileStorage implements FileStorage using the local filesystem
type LocalFileStorage struct {
	basePath  string
	chunkSize int
}

// NewLocalFileStorage creates a storage rooted at basePath
func NewLocalFileStorage(basePath string) *LocalFileStorage {
	return &LocalFileStorage{basePath: basePath, chunkSize: 1024 * 1024}
}

// BasePath returns the archive directory
func (s *LocalFileStorage) BasePath() string {
	return s.basePath
}

// Store copies src to a uniquely named file and returns its path
func (s *LocalFileStorage) Store(ctx context.Context, src io.Reader, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	filePath := filepath.Join(s.basePath, uniqueName(filename, time.Now()))

	destFile, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	buf := make([]byte, s.chunkSize)
	if _, err := io.CopyBuffer(destFile, src, buf); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	}

	return filePath, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks if a stored file is present
func (s *LocalFileStorage) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat file: %w", err)
}

// uniqueName keeps the original base name and extension so archived files stay recognisable
func uniqueName(filename string, now time.Time) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." {
		stem = "upload"
	}
	return fmt.Sprintf("%s_%s_%s%s", stem, now.Format("20060102_150405"), uuid.New().String()[:8], ext)
}
