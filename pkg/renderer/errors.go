package renderer

import "errors"

var (
	// ErrInterrupted is returned when a render stops before every tile is done
	ErrInterrupted = errors.New("renderer: interrupted while rendering")
)
