package cli

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrFileExists        = errors.New("file already exists")
	ErrArchiveIncomplete = errors.New("some files were not archived")
)
