package recap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the movie, series or season does not exist upstream.
	ErrNotFound = errors.New("recap: not found")
	// ErrInvalidRequest means the request failed validation; no I/O was performed.
	ErrInvalidRequest = errors.New("recap: invalid request")
)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}
