package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter saves exported documents under a fixed output directory.
// Used by the one-shot CLI; the HTTP server streams exports directly.
type FileWriter struct {
	dir string
}

// NewFileWriter creates the output directory if needed.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("file: create output dir: %w", err)
	}
	return &FileWriter{dir: dir}, nil
}

// Write stores data under name and returns the full path.
func (w *FileWriter) Write(name string, data []byte) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("file: write %q: %w", path, err)
	}
	return path, nil
}
