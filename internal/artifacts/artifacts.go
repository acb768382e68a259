// Package artifacts stores diagnostic copies of variants whose calculation
// failed, so they can be replayed by hand. Each artifact is a JSON file named
// after the project with a random suffix.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultDir is where FileStore writes when no directory is configured.
const DefaultDir = "error_logs"

// Store persists named artifacts and returns where each one was written.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Name returns a fresh artifact name for projectID.
func Name(projectID string) string {
	return fmt.Sprintf("%s_%s.json", projectID, strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// SaveJSON writes v as indented JSON under a fresh name for projectID.
func SaveJSON(ctx context.Context, store Store, projectID string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode artifact: %w", err)
	}
	return store.Save(ctx, Name(projectID), data)
}

// FileStore writes artifacts into a local directory, creating it on demand.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir
	}
	return &FileStore{dir: dir}
}

// Dir returns the target directory.
func (s *FileStore) Dir() string { return s.dir }

// Save implements Store.
func (s *FileStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
