package models

import "math"

// UploadedFile holds an upload in memory for the duration of one request.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

func (f *UploadedFile) SizeMB() float64 {
	return math.Round(float64(f.Size)/1024/1024*100) / 100
}

type FileInfo struct {
	Name   string  `json:"name"`
	Size   int64   `json:"size"`
	Type   string  `json:"type"`
	SizeMB float64 `json:"size_mb"`
}

func (f *UploadedFile) Info() FileInfo {
	return FileInfo{
		Name:   f.Name,
		Size:   f.Size,
		Type:   f.ContentType,
		SizeMB: f.SizeMB(),
	}
}
