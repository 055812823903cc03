package verify

import "errors"

// ErrNoNumber is returned when a value expected to contain a percentage
// holds no numeric token at all.
var ErrNoNumber = errors.New("no numeric value found")
