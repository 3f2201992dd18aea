package provider

import (
	"mime"
	"os"
	"path/filepath"
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &File{
		Name: filepath.Base(path),

		Content:     data,
		ContentType: contentType,
	}, nil
}
