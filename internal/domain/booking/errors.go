package booking

import "errors"

var (
	// ErrInvalidCatalog is returned when a catalog file cannot be used
	ErrInvalidCatalog = errors.New("invalid booking catalog")
)
