package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies why a backend call failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindTimeout
	KindClient
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// UnexpectedMessage is shown for failures that did not come from the backend client at all.
const UnexpectedMessage = "An unexpected error occurred"

// Error is the single failure type returned by Client.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's "message" or "error" field, empty when the body had neither.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: %s error %d: %s", e.Method, e.Path, e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %s error %d", e.Method, e.Path, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s error: %v", e.Method, e.Path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s %s: %s error", e.Method, e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Structured reports whether the backend supplied a human-readable message.
func (e *Error) Structured() bool { return e.Message != "" }

// KindOf returns the classification of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// Describe converts err into the text shown to the user: the backend's own message when it sent
// one, otherwise fallback.
func Describe(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return UnexpectedMessage
	}
	if apiErr.Structured() {
		return apiErr.Message
	}
	return fallback
}

func kindForStatus(code int) Kind {
	switch {
	case code >= 400 && code < 500:
		return KindClient
	case code >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func kindForTransport(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
