package ingestion

import (
	"errors"
	"fmt"
)

// ValidationError rejects input at the point of submission, before any
// external call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Error reports a failed ingestion attempt: a transport failure, a
// non-JSON body, or a response missing required fields. All three surface
// as this single kind carrying a human-readable detail; the adapter does
// not distinguish transient from permanent failures.
type Error struct {
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume ingestion failed: %s: %v", e.Detail, e.Cause)
	}
	return "resume ingestion failed: " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrUploadInProgress is returned while a previous extraction is still
// outstanding; the caller may resubmit once it completes.
var ErrUploadInProgress = errors.New("an upload is already in progress")
