// Package storage содержит дисковое хранилище загруженных файлов.
package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	domain "staffdir/internal/domain/services"
	svc "staffdir/internal/ports/services"
	"staffdir/pkg/logger"
)

// PublicPrefix - URL-префикс, под которым раздаются сохраненные файлы.
const PublicPrefix = "/uploads"

const randomNameBound = 1_000_000_000

// Config описывает параметры дискового хранилища.
type Config struct {
	Dir          string
	MaxBytes     int64
	AllowedTypes map[string]struct{}
}

// DefaultAllowedTypes возвращает набор MIME-типов изображений, принимаемых по умолчанию.
func DefaultAllowedTypes() map[string]struct{} {
	return map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
		"image/jpg":  {},
		"image/gif":  {},
	}
}

// DiskStorage реализует интерфейс FileStorage поверх локальной директории.
// Сохраненные файлы никогда не удаляются.
type DiskStorage struct {
	cfg Config
}

// NewDiskStorage создает хранилище и директорию для файлов, если ее нет.
func NewDiskStorage(cfg Config) (*DiskStorage, error) {
	if cfg.AllowedTypes == nil {
		cfg.AllowedTypes = DefaultAllowedTypes()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &DiskStorage{cfg: cfg}, nil
}

var _ svc.FileStorage = (*DiskStorage)(nil)

// Save проверяет MIME-тип и размер файла и записывает его под сгенерированным
// именем {unix-millis}-{случайное число}{расширение}. Тип проверяется до
// чтения содержимого. Возвращает путь вида /uploads/{имя файла}.
func (s *DiskStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	log := logger.Log(ctx).With(zap.String("storage", "disk"), zap.String("method", "Save"))

	contentType := file.Header.Get("Content-Type")
	if _, ok := s.cfg.AllowedTypes[contentType]; !ok {
		log.Debug(ctx, "rejected upload with unsupported media type", zap.String("contentType", contentType))
		return "", fmt.Errorf("media type %q: %w", contentType, domain.ErrUnsupportedMediaType)
	}

	if file.Size > s.cfg.MaxBytes {
		log.Debug(ctx, "rejected oversized upload", zap.Int64("size", file.Size), zap.Int64("max", s.cfg.MaxBytes))
		return "", fmt.Errorf("file size %d exceeds %d: %w", file.Size, s.cfg.MaxBytes, domain.ErrFileTooLarge)
	}

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.IntN(randomNameBound), filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		log.Error(ctx, "error opening uploaded file", zap.Error(err))
		return "", fmt.Errorf("opening uploaded file: %w", domain.ErrStoringFile)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.cfg.Dir, name))
	if err != nil {
		log.Error(ctx, "error creating file on disk", zap.Error(err))
		return "", fmt.Errorf("creating file on disk: %w", domain.ErrStoringFile)
	}
	defer func() { _ = dst.Close() }()

	// LimitReader страхует от потоков, размер которых превышает заявленный в заголовке.
	if _, err := io.Copy(dst, io.LimitReader(src, s.cfg.MaxBytes+1)); err != nil {
		log.Error(ctx, "error writing uploaded file", zap.Error(err))
		return "", fmt.Errorf("writing uploaded file: %w", domain.ErrStoringFile)
	}

	storedPath := PublicPrefix + "/" + name
	log.Info(ctx, "uploaded file stored", zap.String("path", storedPath), zap.Int64("size", file.Size))
	return storedPath, nil
}
