package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the serving layer.
type Kind string

const (
	Configuration Kind = "configuration" // missing/invalid connection parameters
	Connection    Kind = "connection"    // external source unreachable or auth failed
	Query         Kind = "query"         // query failed against the external source
	Schema        Kind = "schema"        // result row shape unusable
	Storage       Kind = "storage"       // local cache write failed
	Upload        Kind = "upload"        // image collaborator unreachable or rejected payload
	Busy          Kind = "busy"          // sync already in progress
)

// Error tags an underlying cause with a kind and the pipeline stage it
// happened in.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a fault without an underlying cause.
func New(kind Kind, stage, msg string) *Error {
	return &Error{Kind: kind, Stage: stage, Err: errors.New(msg)}
}

// Wrap tags err with kind and stage. Returns nil for a nil err.
func Wrap(kind Kind, stage string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// KindOf extracts the Kind from err, or "" when err carries no fault.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
