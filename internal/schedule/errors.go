package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no item with the requested identity exists.
	ErrNotFound = errors.New("schedule: item not found")

	// ErrNotLiveSession is returned by host and guest operations on items of
	// any other kind.
	ErrNotLiveSession = errors.New("schedule: item is not a live session")

	// ErrHostFloor is returned when removing a host would leave a live
	// session with none.
	ErrHostFloor = errors.New("schedule: live session needs at least one host")
)

// ValidationError captures field level problems with an item. Nothing is
// mutated when one is returned.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "schedule: validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for f := range v.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v.FieldErrors[f])
	}
	return "schedule: validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

func validationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.add(field, message)
	return v
}

// ConflictError reports that a candidate would overlap a non-filler item.
type ConflictError struct {
	Existing  Item
	Candidate Item
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	return fmt.Sprintf("schedule: overlap between %q and %q", c.Existing.Title, c.Candidate.Title)
}

// Error kinds returned by ErrorKind.
const (
	ErrorKindNotFound   = "not_found"
	ErrorKindWrongKind  = "wrong_kind"
	ErrorKindValidation = "validation"
	ErrorKindConflict   = "conflict"
	ErrorKindUnexpected = "unexpected"
)

// ErrorKind maps an operation result to a stable label. A nil error maps to
// the empty string.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrNotLiveSession):
		return ErrorKindWrongKind
	case errors.Is(err, ErrHostFloor):
		return ErrorKindValidation
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return ErrorKindValidation
	}
	var cErr *ConflictError
	if errors.As(err, &cErr) {
		return ErrorKindConflict
	}
	return ErrorKindUnexpected
}
