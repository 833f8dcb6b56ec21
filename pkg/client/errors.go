package client

import (
	"fmt"
)

// FailureKind classifies a failed request for diagnostics. Callers are expected to treat every kind
// the same way.
type FailureKind string

const (
	FailureTransport    FailureKind = "transport"
	FailureStatus       FailureKind = "status"
	FailureDecode       FailureKind = "decode"
	FailureMissingField FailureKind = "missing_field"
)

// RequestError is the single error type returned by GetResponse.
type RequestError struct {
	Kind       FailureKind
	RequestID  string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("request %s failed (%s)", e.RequestID, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
