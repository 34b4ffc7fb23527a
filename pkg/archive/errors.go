package archive

import "errors"

var (
	ErrListFailed     = errors.New("archive: failed to list files")
	ErrMissingHash    = errors.New("archive: record has no sha256")
	ErrDownloadFailed = errors.New("archive: download failed")
	ErrStoreFailed    = errors.New("archive: store failed")
)
