package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure so callers can react without matching
// on error strings.
type Kind int

const (
	// KindTransport covers connection, DNS, and timeout failures.
	KindTransport Kind = iota
	// KindDecode covers malformed response bodies.
	KindDecode
	// KindServer covers non-OK statuses and server-reported errors.
	KindServer
)

// String returns the kind's log label.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified API failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain. Unclassified
// errors are reported as transport failures.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}

// ServerMessage returns the server-provided message for a KindServer
// failure, or a generic fallback for anything else.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindServer {
		return apiErr.Err.Error()
	}
	return "request failed"
}
