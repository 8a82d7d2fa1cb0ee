package store

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotAuthenticated is returned by facade operations invoked without an
// active owner session. No store call is attempted in that case.
var ErrNotAuthenticated = errors.New("no authenticated owner session")

// Kind classifies a store failure. PermissionDenied and MissingIndex are
// kept distinct because they need different operator remediation (fix the
// security rules vs. create the index) and the hub surfaces them as
// separate user-actionable states.
type Kind int

const (
	KindOther Kind = iota
	KindPermissionDenied
	KindMissingIndex
	KindTransport
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission-denied"
	case KindMissingIndex:
		return "missing-index"
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not-found"
	default:
		return "other"
	}
}

// Error is a classified failure from a store call.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "contacts.getAll"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps err in an *Error with a Kind derived from its gRPC status
// code. Firestore reports a missing composite index as FailedPrecondition
// with an index hint in the message.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	kind := KindOther
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		kind = KindPermissionDenied
	case codes.FailedPrecondition:
		if strings.Contains(strings.ToLower(err.Error()), "index") {
			kind = KindMissingIndex
		}
	case codes.NotFound:
		kind = KindNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = KindTransport
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// MigrationError reports that a bulk migration did not commit. The caller
// must assume zero records were written; partial application is never
// observable.
type MigrationError struct {
	Err error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration did not complete, no records were written: %v", e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }
