// Package repositories holds what every repository and store shares.
package repositories

import (
	"errors"
)

var (
	ErrOperationNotSupported = errors.New("operation not supported")
	ErrNotFound              = errors.New("record not found")
	ErrUnavailable           = errors.New("storage unavailable")
)
