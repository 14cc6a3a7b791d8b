package services

import (
	"context"
	"mime/multipart"
)

// FileStorage определяет интерфейс для сохранения загруженных файлов.
// Save возвращает относительный путь вида /uploads/{имя файла}.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}
