package engine

import "errors"

// Errors returned by engine request handling.
var (
	ErrTimeout       = errors.New("engine: request timed out")
	ErrEngineClosed  = errors.New("engine: engine is closed")
	ErrRequestIDFull = errors.New("engine: no free request-id available")
)
