package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// FileBackend keeps the value as the entire contents of a single text file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend rooted at path. The parent directory is
// created on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), " \t\r\n"), nil
}

// Write replaces the file wholesale. The temp-file-and-rename done by
// renameio means a reader sees either the old or the new contents.
func (b *FileBackend) Write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	return renameio.WriteFile(b.path, []byte(value), 0o644)
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) Describe() string {
	return "file:" + b.path
}
