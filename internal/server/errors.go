package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-normalizer/internal/tailor"
	"github.com/jonathan/resume-normalizer/internal/validation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates nothing is stored for a session
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates a feature the server was started without
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		decodeErr      *validation.DecodeError
		notFoundErr    *ErrNotFound
		unavailableErr *ErrUnavailable
		serviceErr     *tailor.ServiceError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &serviceErr):
		switch serviceErr.Kind {
		case tailor.KindInvalidRequest:
			return http.StatusBadRequest
		case tailor.KindTimeout:
			return http.StatusGatewayTimeout
		default:
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}
