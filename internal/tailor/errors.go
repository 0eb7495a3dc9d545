package tailor

import (
	"context"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// ErrorKind classifies a tailoring failure.
type ErrorKind string

// Failure kinds.
const (
	KindTimeout        ErrorKind = "timeout"
	KindNetwork        ErrorKind = "network"
	KindStatus         ErrorKind = "status"
	KindDecode         ErrorKind = "decode"
	KindRejected       ErrorKind = "rejected"
	KindInvalidRequest ErrorKind = "invalid_request"
)

// ServiceError is a non-fatal tailoring failure. Callers continue with the
// untailored document and show Message to the user.
type ServiceError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("tailor %s error: API returned status: %d", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("tailor %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("tailor %s error", e.Kind)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Message returns the text shown to the user.
func (e *ServiceError) Message() string {
	switch e.Kind {
	case KindTimeout:
		return "Connection to AI service timed out. Continuing with original resume."
	case KindNetwork:
		return "Cannot connect to AI service. Make sure the backend is running."
	case KindStatus:
		return fmt.Sprintf("AI service error: API returned status: %d", e.Status)
	default:
		if e.Err != nil {
			return "AI service error: " + e.Err.Error()
		}
		return "AI service error: Unknown error"
	}
}

// Classify converts a transport error into a ServiceError. ServiceErrors pass
// through unchanged.
func Classify(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Kind: KindTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &ServiceError{Kind: KindTimeout, Err: err}
		}
		return &ServiceError{Kind: KindNetwork, Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &ServiceError{Kind: KindNetwork, Err: err}
	}

	return &ServiceError{Kind: KindRejected, Err: err}
}
