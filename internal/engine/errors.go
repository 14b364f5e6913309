package engine

import "errors"

// ErrNoOutcome is returned when a resolver reports neither an outcome nor an error
var ErrNoOutcome = errors.New("resolver returned no outcome")
