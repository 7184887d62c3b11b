package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call. Orchestrators branch on the kind;
// the message is what the user sees.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindClient
	KindServer
	KindNetwork
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindClient:
		return "client error"
	case KindServer:
		return "server error"
	case KindNetwork:
		return "network error"
	case KindValidation:
		return "validation error"
	default:
		return "unknown error"
	}
}

// Error is the structured failure every api call returns. Status is the
// HTTP status that produced it, 0 for transport failures and for errors
// raised before any network call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Validation builds a client-side validation failure; it never comes
// from the network.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a local not-found failure (e.g. an identifier missing
// from an in-memory collection).
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Status: 401, Message: "you are not logged in"}
}

func network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "network error: " + err.Error()}
}

// classify maps a non-2xx status and the best available message to an Error.
func classify(status int, message string) *Error {
	kind := KindClient
	switch {
	case status == 401:
		kind = KindUnauthenticated
	case status == 403:
		kind = KindForbidden
	case status == 404:
		kind = KindNotFound
	case status >= 500:
		kind = KindServer
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// KindOf extracts the classification from err, KindUnknown when err is
// not an api error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
