package http

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/vidtube/api/internal/core/ports"
)

type requestFile struct {
	ports.FileUpload
	file multipart.File
}

func (f requestFile) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// fileFromRequest pulls one named file out of a multipart form.
func fileFromRequest(r *http.Request, field string, maxSize int64) (requestFile, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			return requestFile{}, fmt.Errorf("failed to parse multipart form")
		}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return requestFile{}, fmt.Errorf("%s file is required", field)
	}

	return requestFile{
		FileUpload: ports.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		},
		file: file,
	}, nil
}
