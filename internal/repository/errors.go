package repository

import "errors"

// ErrUnsupportedDriver is returned by Open for an unknown store driver.
var ErrUnsupportedDriver = errors.New("unsupported store driver")

// ErrMissingID is returned when the store does not report a generated id.
var ErrMissingID = errors.New("store returned no document id")
