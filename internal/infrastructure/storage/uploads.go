// Package storage persists uploaded scan images on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// AllowedExtensions are the upload types accepted by the API.
var AllowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// UploadStore writes scan images under a fixed uploads directory using the
// pattern <patientID>_<YYYYMMDD_HHMMSS><ext>.
type UploadStore struct {
	dir string
	now func() time.Time
}

// NewUploadStore creates the uploads directory if needed.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &UploadStore{dir: dir, now: time.Now}, nil
}

// Save writes the image and returns its stored path. The patient id is
// sanitized before it becomes part of the filename.
func (s *UploadStore) Save(ctx context.Context, patientID, ext string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !AllowedExtensions[ext] {
		return "", fmt.Errorf("disallowed file extension %q", ext)
	}

	name := fmt.Sprintf("%s_%s%s", sanitize(patientID), s.now().Format("20060102_150405"), ext)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Remove deletes a previously saved image.
func (s *UploadStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(path)
}

func sanitize(id string) string {
	return unsafeChars.ReplaceAllString(id, "")
}
