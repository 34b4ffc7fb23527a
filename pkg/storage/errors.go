package storage

import "errors"

var (
	ErrInvalidKey    = errors.New("storage: invalid key")
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrNotFound      = errors.New("storage: object not found")
	ErrIsDirectory   = errors.New("storage: key is a directory")
	ErrSizeMismatch  = errors.New("storage: written size differs from declared size")

	// I/O errors
	ErrFailedToCreateDirectory = errors.New("storage: failed to create directory")
	ErrFailedToWriteFile       = errors.New("storage: failed to write file")
	ErrFailedToDeleteFile      = errors.New("storage: failed to delete file")
	ErrFailedToStatPath        = errors.New("storage: failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("storage: failed to get absolute path")

	// S3 errors
	ErrBucketNotFound     = errors.New("storage: bucket not found")
	ErrAccessDenied       = errors.New("storage: access denied")
	ErrRequestTimeout     = errors.New("storage: request timed out")
	ErrServiceUnavailable = errors.New("storage: service temporarily unavailable")
	ErrFailedToLoadConfig = errors.New("storage: failed to load AWS config")

	ErrOperationTimeout  = errors.New("storage: operation timed out")
	ErrOperationCanceled = errors.New("storage: operation canceled")
)
