package aggregate

import (
	"context"
	"errors"
)

// Error kinds, matched with errors.Is.
var (
	ErrNotFound      = errors.New("folder not found")
	ErrDirectoryRead = errors.New("directory read failed")
	ErrEmptyResult   = errors.New("no matching files found in the specified folder or its subfolders")
	ErrFileRead      = errors.New("file read failed")
	ErrWrite         = errors.New("write failed")
	ErrCancelled     = errors.New("cancelled")
)

// Error carries the kind of failure, the path it concerns and the cause.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func cancelledErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &Error{Kind: ErrCancelled, Err: err}
	}
	return nil
}

// firstError picks the first failure that is not a cancellation, so the
// error that triggered sibling cancellation wins over the fallout.
func firstError(errs []error) error {
	var fallback error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrCancelled) {
			return err
		}
		if fallback == nil {
			fallback = err
		}
	}
	return fallback
}

var errNotDirectory = errors.New("not a directory")
