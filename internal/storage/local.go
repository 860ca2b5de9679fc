package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage хранит файлы в каталоге на диске
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Put записывает во временный файл и переименовывает его, чтобы замена была атомарной
func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) error {
	target := s.resolve(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(s.resolve(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Handler раздаёт сохранённые файлы
func (s *LocalStorage) Handler() http.Handler {
	return http.FileServer(http.Dir(s.root))
}

func (s *LocalStorage) resolve(key string) string {
	clean := path.Clean("/" + key)
	return filepath.Join(s.root, filepath.FromSlash(clean))
}
