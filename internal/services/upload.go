package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrFileTooLarge = errors.New("file too large")

type UploadService interface {
	ReadFile(file *multipart.FileHeader) (*models.UploadedFile, error)
	MaxFileSize() int64
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

func (s *uploadService) MaxFileSize() int64 {
	return s.maxFileSize
}

// ReadFile validates an uploaded file and loads it into memory.
func (s *uploadService) ReadFile(file *multipart.FileHeader) (*models.UploadedFile, error) {
	if !IsSupportedFormat(file.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.Filename)
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf(
			"%w: %s is %.1f MB, maximum is %.1f MB",
			ErrFileTooLarge,
			file.Filename,
			float64(file.Size)/1024/1024,
			float64(s.maxFileSize)/1024/1024,
		)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &models.UploadedFile{
		Name:        file.Filename,
		Size:        int64(len(data)),
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
