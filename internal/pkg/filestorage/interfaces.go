package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations.
// Implementations must be swappable between the local filesystem and a cloud
// blob store without affecting callers: references returned by SaveFile are
// opaque and only meaningful to ReadFile/DeleteFile of the same backend.
type FileStorage interface {
	// SaveFile stores an uploaded file and returns its reference
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// ReadFile returns the content of a previously stored file
	ReadFile(reference string) ([]byte, error)

	// DeleteFile removes a file from storage; deleting a missing file is not an error
	DeleteFile(reference string) error
}
