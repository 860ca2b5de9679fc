package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/storage"
)

// UploadKind - куда сохраняется загруженный файл
type UploadKind string

const (
	UploadAvatar   UploadKind = "avatar"
	UploadSnapshot UploadKind = "snapshot"
)

// UploadFile - загруженный файл; nil означает, что поле файла в запросе отсутствует
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// UploadService определяет интерфейс загрузки аватаров и снимков проектов
type UploadService interface {
	// Upload сохраняет файл и возвращает абсолютный URL. Сначала проверяется
	// существование сущности (ErrEmployeeNotFound / ErrProjectNotFound), затем наличие файла
	Upload(ctx context.Context, kind UploadKind, id int64, file *UploadFile) (string, error)
}

type uploadTarget struct {
	dir     string
	current func(ctx context.Context, id int64) (string, error)
	update  func(ctx context.Context, id int64, key string) error
}

type uploadService struct {
	store   storage.Storage
	media   storage.URLResolver
	targets map[UploadKind]uploadTarget
	logger  *slog.Logger
}

// NewUploadService создаёт новый экземпляр сервиса
func NewUploadService(
	store storage.Storage,
	media storage.URLResolver,
	empRepo repository.EmployeeRepository,
	projectRepo repository.ProjectRepository,
	logger *slog.Logger,
) UploadService {
	return &uploadService{
		store:  store,
		media:  media,
		logger: logger,
		targets: map[UploadKind]uploadTarget{
			UploadAvatar: {
				dir: "avatars",
				current: func(ctx context.Context, id int64) (string, error) {
					emp, err := empRepo.GetByID(ctx, id)
					if err != nil {
						return "", err
					}
					return emp.Avatar, nil
				},
				update: empRepo.UpdateAvatar,
			},
			UploadSnapshot: {
				dir: "snapshots",
				current: func(ctx context.Context, id int64) (string, error) {
					project, err := projectRepo.GetByID(ctx, id)
					if err != nil {
						return "", err
					}
					return project.Snapshot, nil
				},
				update: projectRepo.UpdateSnapshot,
			},
		},
	}
}

func (s *uploadService) Upload(ctx context.Context, kind UploadKind, id int64, file *UploadFile) (string, error) {
	target, ok := s.targets[kind]
	if !ok {
		return "", domain.ErrUnsupportedUploadKind
	}

	previous, err := target.current(ctx, id)
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", domain.ErrMissingUploadFile
	}

	key := storage.ObjectKey(target.dir, file.Name)
	if err := s.store.Put(ctx, key, file.Body, file.Size, file.ContentType); err != nil {
		return "", fmt.Errorf("store %s: %w", kind, err)
	}

	if err := target.update(ctx, id, key); err != nil {
		if rmErr := s.store.Delete(ctx, key); rmErr != nil {
			s.logger.Warn("failed to remove orphaned upload",
				slog.String("key", key),
				slog.Any("error", rmErr),
			)
		}
		return "", err
	}

	if previous != "" && previous != key {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.logger.Warn("failed to remove replaced upload",
				slog.String("key", previous),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("file uploaded",
		slog.String("kind", string(kind)),
		slog.Int64("id", id),
		slog.String("key", key),
	)
	return s.media.Absolute(key), nil
}
