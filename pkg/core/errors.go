package core

import "errors"

// ErrInvalidInput is returned when scene construction is handed data it cannot
// build from, such as an empty primitive list or a face with fewer than three
// vertices. It is always reported before any ray is traced.
var ErrInvalidInput = errors.New("invalid input")
