package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched (via errors.Is) by every error reporting that a
// requested document does not exist.
var ErrNotFound = errors.New("content: not found")

// NotFoundError reports a missing document.
type NotFoundError struct {
	Kind Kind
	Slug string
	Path string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Slug != "":
		return fmt.Sprintf("content: %s %q not found", e.Kind, e.Slug)
	case e.Path != "":
		return fmt.Sprintf("content: %s not found", e.Path)
	default:
		return fmt.Sprintf("content: %s not found", e.Kind)
	}
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a document that could not be read or whose metadata
// block could not be parsed into a mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("content: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports metadata that parsed but does not have the shape
// required for its document kind.
type ValidationError struct {
	Kind   Kind
	Name   string // slug for collection documents, file stem for singletons
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	name := e.Name
	if name == "" {
		name = "unknown"
	}
	if e.Field == "" {
		return fmt.Sprintf("content: invalid %s %q: %s", e.Kind, name, e.Reason)
	}
	return fmt.Sprintf("content: invalid %s %q: field %q %s", e.Kind, name, e.Field, e.Reason)
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsParse reports whether err is, or wraps, a *ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
