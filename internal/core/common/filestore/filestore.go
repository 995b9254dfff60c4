// Package filestore is the opaque "store a file, return a path" collaborator
// used by certificate and profile photo uploads.
package filestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/talenthub/talent-hub/internal"
)

// Store persists an uploaded file and returns the public path it is served
// under.
type Store interface {
	Save(folder, originalName string, r io.Reader) (string, error)
}

// DiskStore writes uploads beneath a root directory, one subfolder per kind.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (d *DiskStore) Save(folder, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(d.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", internal.NewStorageError("failed to create upload directory", err)
	}

	name := fmt.Sprintf("%s-%s", uuid.NewString(), filepath.Base(originalName))
	dst := filepath.Join(dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", internal.NewStorageError("failed to create upload file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", internal.NewStorageError("failed to write upload file", err)
	}

	return "/" + filepath.ToSlash(filepath.Join("uploads", folder, name)), nil
}

// CheckUpload validates a multipart file against an allow-list of mime types
// and a size cap before anything touches disk.
func CheckUpload(header *multipart.FileHeader, allowedTypes []string, maxSize int64) error {
	if header == nil {
		return internal.NewUploadError("file is missing", internal.ErrCodeFileMissing)
	}
	if header.Size > maxSize {
		return internal.NewUploadError(
			fmt.Sprintf("file exceeds the %d byte limit", maxSize),
			internal.ErrCodeFileTooLarge,
		)
	}

	contentType := header.Header.Get("Content-Type")
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return internal.NewUploadError(
		fmt.Sprintf("unsupported file type %q", contentType),
		internal.ErrCodeUnsupportedFileType,
	)
}
