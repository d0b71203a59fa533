package ports

import (
	"context"
	"io"
)

// FileUpload is an incoming file before it reaches object storage.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaStore persists uploaded media and returns a publicly reachable URL.
type MediaStore interface {
	Upload(ctx context.Context, folder string, upload FileUpload) (url string, err error)
	Delete(ctx context.Context, url string) error
}
