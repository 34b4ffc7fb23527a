package config

import "errors"

var (
	ErrParsingConfig   = errors.New("config: failed to parse environment")
	ErrLoadingEnvFile  = errors.New("config: failed to load env file")
	ErrConfigNotLoaded = errors.New("config: cached value has an unexpected type")
	// ErrNilPointer is returned when Parse or Load receive a nil target.
	ErrNilPointer = errors.New("config: nil target")
)
