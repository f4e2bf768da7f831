package helpers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"confsite/internal/domain"
)

// ParseID reads the {id} path value. ok is false for anything but a positive integer.
func ParseID(r *http.Request) (id int64, ok bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseForm parses a multipart body, spilling parts beyond maxMemory to temp files,
// and falls back to a urlencoded body.
func ParseForm(r *http.Request, maxMemory int64) error {
	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// FormValue returns the trimmed form field.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormUpload returns the uploaded file in field, or nil if none was chosen.
// The caller must call the returned close func.
func FormUpload(r *http.Request, field string) (*domain.UploadedFile, func(), error) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if header.Filename == "" {
		file.Close()
		return nil, noop, nil
	}
	return &domain.UploadedFile{Filename: header.Filename, Content: file}, func() { file.Close() }, nil
}
