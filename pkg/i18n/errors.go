package i18n

import "errors"

var (
	ErrNilAdapter      = errors.New("translation adapter is nil")
	ErrNilParser       = errors.New("translation parser is nil")
	ErrEmptyLanguage   = errors.New("empty language code")
	ErrInvalidLanguage = errors.New("invalid language code")

	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrInvalidStructure  = errors.New("invalid catalog structure")

	ErrFailedToReadDirectory = errors.New("failed to read catalog directory")
	ErrFailedToReadFile      = errors.New("failed to read catalog file")
	ErrNoCatalogs            = errors.New("no catalog files found")
	ErrLoadingCancelled      = errors.New("loading catalogs cancelled")
)
