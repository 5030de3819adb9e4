package engine

import "errors"

var (
	ErrInvalidRate       = errors.New("engine: rate must be positive")
	ErrInvalidResolution = errors.New("engine: resolution must be positive")
	ErrInvalidPath       = errors.New("engine: malformed resource path")
	ErrNotFound          = errors.New("engine: resource not found")
	ErrWrongKind         = errors.New("engine: resource has a different kind")
	ErrRunning           = errors.New("engine: already running")
	ErrStopped           = errors.New("engine: stopped engines cannot be restarted")
	ErrNotInitialized    = errors.New("engine: no host attached")
)
