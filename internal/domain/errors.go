package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveSession is returned when a business operation is attempted
	// while the session is not logged on.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionNotFound is returned when an outbound send targets a session
	// that no longer exists. Batch operations log it and continue.
	ErrSessionNotFound = errors.New("session not found")
)

// DecodeError reports a required field missing from an inbound message.
// The boundary logs it with enough context to reconstruct the cause and the
// message is dropped.
type DecodeError struct {
	MsgType MsgType
	Field   string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: field %s: %v", string(e.MsgType), e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError wraps a field extraction failure.
func NewDecodeError(msgType MsgType, fieldName string, err error) *DecodeError {
	return &DecodeError{MsgType: msgType, Field: fieldName, Err: err}
}
