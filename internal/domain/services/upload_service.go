package services

import (
	"errors"
)

// Ошибки, связанные с загрузкой файлов.
var (
	ErrUnsupportedMediaType = errors.New("only image uploads are allowed")
	ErrFileTooLarge         = errors.New("uploaded file exceeds size limit")
	ErrStoringFile          = errors.New("failed to store uploaded file")
)
