package clients

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind classifies backend call failures at the client boundary, so store
// logic downstream never branches on ad hoc response field presence.
type ErrKind int

const (
	// ErrKindTransport is a network-level failure: the request never produced
	// an HTTP response (connection refused, timeout, cancelled context).
	ErrKindTransport ErrKind = iota + 1
	// ErrKindStatus is a non-2xx HTTP response.
	ErrKindStatus
	// ErrKindBackend is a 2xx response whose body carries an error field.
	ErrKindBackend
	// ErrKindDecode is a 2xx response that failed to decode into the expected shape.
	ErrKindDecode
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindTransport:
		return "transport"
	case ErrKindStatus:
		return "status"
	case ErrKindBackend:
		return "backend"
	case ErrKindDecode:
		return "decode"
	}
	return "unknown"
}

// BackendError is the tagged failure returned by every BackendClient method.
type BackendError struct {
	Kind ErrKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind, or zero for non-backend errors.
func KindOf(err error) ErrKind {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

// IsUnreachable reports whether the backend could not be reached at all.
// The local command fallback activates only on this kind of failure.
func IsUnreachable(err error) bool {
	return KindOf(err) == ErrKindTransport
}
