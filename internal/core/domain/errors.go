package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed backend call.
type ErrorKind int

const (
	// KindRejected means the backend answered with a non-401 error status.
	KindRejected ErrorKind = iota
	// KindUnauthorized means the backend answered 401: the credential is missing or expired.
	KindUnauthorized
	// KindUnreachable means no response was received.
	KindUnreachable
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindUnreachable:
		return "unreachable"
	default:
		return "rejected"
	}
}

// APIError is the single error type returned by the backend API client.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Fields holds per-field messages when the backend returned an "errors" object.
	Fields map[string]string
	Err    error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return fmt.Sprintf("backend unreachable: %v", e.Err)
	case KindUnauthorized:
		return "backend: unauthorized"
	}
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend rejected request (%d)", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status a page or JSON answer carries for this failure.
func (e *APIError) HTTPStatus() int {
	switch {
	case e.Kind == KindUnauthorized:
		return http.StatusUnauthorized
	case e.Kind == KindUnreachable:
		return http.StatusBadGateway
	case e.Status >= http.StatusBadRequest:
		return e.Status
	}
	return http.StatusBadGateway
}

// UserMessage is the text shown on screen: the backend's own message when it sent
// one, otherwise the screen's fallback.
func (e *APIError) UserMessage(fallback string) string {
	switch e.Kind {
	case KindUnreachable:
		return MsgNetworkError
	case KindUnauthorized:
		return MsgSessionExpired
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

const (
	MsgNetworkError   = "Network error. Please try again."
	MsgSessionExpired = "Session expired. Please login again."
	MsgFixErrors      = "Please fix the errors in the form"
)

var (
	// ErrSuperseded marks a read whose response arrived after a newer read for the same view was issued.
	ErrSuperseded = errors.New("request superseded by a newer one")
	// ErrDuplicateSubmission is returned when an identical write is already in flight.
	ErrDuplicateSubmission = errors.New("identical submission already in progress")
)

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindUnauthorized
}
