package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures so boundaries can map them to status codes or
// console messages without inspecting error text.
type Kind uint8

const (
	KindNone Kind = iota
	// KindValidation: caller input broke a required-field or enum rule.
	KindValidation
	// KindNotFound: a referenced entity does not exist.
	KindNotFound
	// KindConflict: a uniqueness violation or a delete blocked by dependents.
	KindConflict
	// KindPersistence: the datastore failed. Details are never shown to callers.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	default:
		return "none"
	}
}

// ErrHasDependents is wrapped by conflicts raised when a delete is blocked
// because other rows still reference the target.
var ErrHasDependents = errors.New("entity has dependent rows")

// Error is the error value returned by the repo and services layers.
type Error struct {
	Kind    Kind
	Field   string // offending input field or entity name, optional
	Message string // safe to show to callers (except for KindPersistence)
	Err     error  // underlying cause, optional
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" && e.Kind == KindValidation {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a bad input field.
func Validation(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Message: msg}
}

// NotFound reports that entity id does not exist.
func NotFound(entity, id string) error {
	return &Error{Kind: KindNotFound, Field: entity, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// Conflict reports a uniqueness violation on field.
func Conflict(field, msg string) error {
	return &Error{Kind: KindConflict, Field: field, Message: msg}
}

// DependencyConflict reports a delete blocked by referencing rows.
func DependencyConflict(entity, msg string) error {
	return &Error{Kind: KindConflict, Field: entity, Message: msg, Err: ErrHasDependents}
}

// Persistence wraps a datastore failure raised while running op.
func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Message: op + " failed", Err: err}
}

// KindOf returns the Kind carried by err. Errors that are not *Error are
// treated as persistence failures; nil yields KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}

// PublicMessage returns the caller-facing message for err. Persistence and
// foreign errors collapse to a generic message.
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindPersistence {
		if de.Kind == KindValidation && de.Field != "" {
			return de.Field + ": " + de.Message
		}
		return de.Message
	}
	return "internal server error"
}
