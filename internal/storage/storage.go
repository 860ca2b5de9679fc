package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/themis-api/internal/config"
)

// Storage определяет интерфейс хранилища загружаемых файлов.
// Ключи - относительные пути с прямыми слешами, например "avatars/<uuid>.png"
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// New создаёт хранилище по настройкам
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalRoot), nil
	case "minio":
		return NewMinioStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectKey формирует уникальный ключ объекта в каталоге dir с расширением исходного файла
func ObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(dir, uuid.NewString()+ext)
}

// URLResolver превращает сохранённый относительный путь в абсолютный URL
type URLResolver struct {
	host   string
	prefix string
}

func NewURLResolver(cfg config.MediaConfig) URLResolver {
	prefix := "/" + strings.Trim(cfg.URLPrefix, "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	return URLResolver{
		host:   strings.TrimRight(cfg.Host, "/"),
		prefix: prefix,
	}
}

// Absolute возвращает пустую строку для пустого пути; уже абсолютные URL не меняются
func (u URLResolver) Absolute(key string) string {
	if key == "" {
		return ""
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return u.host + u.prefix + strings.TrimLeft(key, "/")
}

// Prefix - URL-префикс, под которым раздаются файлы
func (u URLResolver) Prefix() string {
	return u.prefix
}
