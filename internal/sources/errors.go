package sources

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failures an adapter call can surface.
type Kind string

const (
	// KindSourceNotFound means the top-level source object is missing.
	KindSourceNotFound Kind = "source_not_found"
	// KindInvalidContent means the top-level object exists but cannot be
	// parsed or lacks a mandatory field.
	KindInvalidContent Kind = "invalid_content"
)

// Sentinels for errors.Is matching against an *Error.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrInvalidContent = errors.New("invalid content")
)

// Error is a top-level adapter failure.
type Error struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.sentinel())
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSourceNotFound) match by kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	if e.Kind == KindSourceNotFound {
		return ErrSourceNotFound
	}
	return ErrInvalidContent
}

// NotFound builds a KindSourceNotFound error.
func NotFound(source string, err error) *Error {
	return &Error{Kind: KindSourceNotFound, Source: source, Err: err}
}

// Invalid builds a KindInvalidContent error.
func Invalid(source string, err error) *Error {
	return &Error{Kind: KindInvalidContent, Source: source, Err: err}
}

// KindOf returns the Kind of err, or "" when err is not an adapter failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
