package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPath       = errors.New("invalid path")
	ErrDecode            = errors.New("decode failed")
	ErrEmptyBatch        = errors.New("no frames in batch")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidName       = errors.New("invalid file name")
	ErrWrite             = errors.New("write failed")
)

// CleanupError reports that the superseded file could not be removed after a
// successful write. The written file stays in place.
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("%v: delete old file %q: %v", ErrWrite, e.Path, e.Err)
}

func (e *CleanupError) Unwrap() []error { return []error{ErrWrite, e.Err} }
