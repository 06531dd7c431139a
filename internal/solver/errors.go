package solver

import "errors"

// ErrConfig marks configuration errors detected when a solver is created.
var ErrConfig = errors.New("invalid solver configuration")

// ErrState is returned when an operation is not allowed in the current state.
var ErrState = errors.New("invalid solver state")
