// Package tailor talks to the AI service that rewrites a resume's bullet
// points for a job description.
package tailor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTimeout bounds a tailoring call.
	DefaultTimeout = 10 * time.Second
	// PingTimeout bounds an availability probe.
	PingTimeout = 5 * time.Second
	// DefaultEndpoint is the analyze endpoint of a locally running service.
	DefaultEndpoint = "http://localhost:5000/api/analyze"
)

var validate = validator.New()

// Tailorer produces raw tailored content for a resume. The returned bytes are
// the service's tailoredContent payload, unreconciled.
type Tailorer interface {
	Tailor(ctx context.Context, req Request) ([]byte, error)
}

// Request is the body sent to the tailoring service.
type Request struct {
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"jobDescription" validate:"required"`
}

// Validate checks that the request has a resume and a non-blank job
// description.
func (r Request) Validate() error {
	r.JobDescription = strings.TrimSpace(r.JobDescription)
	if err := validate.Struct(r); err != nil {
		return &ServiceError{Kind: KindInvalidRequest, Err: err}
	}
	return nil
}
