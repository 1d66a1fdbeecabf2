package api

import (
	"errors"
	"net/http"
)

// Kind is the pure classification of a failed call. Mapping a status to a
// Kind is side-effect free; the effectful reaction (session eviction,
// notification, navigation) lives in the client's rejection path and the
// Reactor.
type Kind string

const (
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindValidation   Kind = "VALIDATION"
	KindServer       Kind = "SERVER"
	KindNetwork      Kind = "NETWORK"
)

// Classify maps an HTTP status to an error kind.
func Classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= http.StatusInternalServerError:
		return KindServer
	default:
		return KindValidation
	}
}

// Error is returned for every rejected call. Message carries the
// backend-provided detail verbatim when the body had one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	err     error // wrapped low-level error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	if e.err != nil {
		return string(e.Kind) + ": " + e.err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.err
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Detail returns the backend-provided message from err, or the empty string.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
