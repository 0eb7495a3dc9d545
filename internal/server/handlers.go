package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-normalizer/internal/pipeline"
	"github.com/jonathan/resume-normalizer/internal/reconcile"
	"github.com/jonathan/resume-normalizer/internal/store"
	"github.com/jonathan/resume-normalizer/internal/tailor"
	"github.com/jonathan/resume-normalizer/internal/types"
	"github.com/jonathan/resume-normalizer/internal/validation"
)

// NormalizeRequest is the body of POST /normalize.
type NormalizeRequest struct {
	Resume          json.RawMessage `json:"resume"`
	TailoredContent json.RawMessage `json:"tailoredContent,omitempty"`
}

// ReconcileRequest is the body of POST /reconcile. FallbackCompany wins over
// the company derived from Resume.
type ReconcileRequest struct {
	TailoredContent json.RawMessage `json:"tailoredContent"`
	FallbackCompany string          `json:"fallbackCompany,omitempty"`
	Resume          json.RawMessage `json:"resume,omitempty"`
}

// ReconcileResponse is returned by the reconcile and session read endpoints.
type ReconcileResponse struct {
	TailoredContent *types.TailoredContent `json:"tailoredContent"`
	Rejections      []types.Rejection      `json:"rejections"`
}

// TailorRequest is the body of POST /sessions/{id}/tailor.
type TailorRequest struct {
	Resume         json.RawMessage `json:"resume"`
	JobDescription string          `json:"jobDescription"`
}

// TailorResponse carries the document sent for tailoring and, when the
// service succeeded, the reconciled content. Warning is set instead when the
// service failed and the document stays untailored.
type TailorResponse struct {
	SessionID       uuid.UUID              `json:"sessionId"`
	Document        *types.Resume          `json:"document"`
	TailoredContent *types.TailoredContent `json:"tailoredContent"`
	Rejections      []types.Rejection      `json:"rejections"`
	Warning         string                 `json:"warning,omitempty"`
}

// present reports whether a raw field was supplied with a non-null value.
func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if !present(req.Resume) {
		s.fail(w, &ErrValidation{Field: "resume", Message: "is required"})
		return
	}

	in := pipeline.Input{Resume: req.Resume}
	if present(req.TailoredContent) {
		in.Tailored = req.TailoredContent
	}

	s.jsonResponse(w, http.StatusOK, pipeline.Normalize(in, s.options))
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if !present(req.TailoredContent) {
		s.fail(w, &ErrValidation{Field: "tailoredContent", Message: "is required"})
		return
	}

	var tctx types.TailorContext
	if present(req.Resume) {
		doc, _ := validation.DecodeDocument(req.Resume)
		tctx = types.TailorContextFor(doc)
	}
	if req.FallbackCompany != "" {
		tctx.FallbackCompany = req.FallbackCompany
	}

	content, rejections := reconcile.Reconcile(req.TailoredContent, tctx)
	s.jsonResponse(w, http.StatusOK, ReconcileResponse{TailoredContent: content, Rejections: nonNil(rejections)})
}

func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if s.tailorer == nil {
		s.fail(w, &ErrUnavailable{Feature: "tailoring"})
		return
	}

	var req TailorRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if !present(req.Resume) {
		s.fail(w, &ErrValidation{Field: "resume", Message: "is required"})
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.fail(w, &ErrValidation{Field: "jobDescription", Message: "is required"})
		return
	}

	doc, rejections := validation.DecodeDocument(req.Resume)
	if s.options.SanitizeDescriptions {
		pipeline.SanitizeDocument(doc, s.options.Bullets)
	}

	resp := TailorResponse{SessionID: id, Document: doc, Rejections: nonNil(rejections)}

	content, tailorRejections, err := pipeline.Tailor(r.Context(), s.tailorer, s.kv, store.SessionKey(id), doc, req.JobDescription, s.tailorTimeout)
	var serviceErr *tailor.ServiceError
	switch {
	case errors.As(err, &serviceErr):
		if serviceErr.Kind == tailor.KindInvalidRequest {
			s.fail(w, err)
			return
		}
		s.logger.Warn().Err(err).Str("session", id.String()).Msg("tailoring failed, continuing untailored")
		resp.Warning = serviceErr.Message()
	case err != nil:
		s.fail(w, err)
		return
	default:
		resp.TailoredContent = content
		resp.Rejections = append(resp.Rejections, tailorRejections...)
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetTailored(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	tctx := types.TailorContext{FallbackCompany: r.URL.Query().Get("fallbackCompany")}
	content, rejections, err := pipeline.LoadTailored(r.Context(), s.kv, store.SessionKey(id), tctx)
	if err != nil {
		s.fail(w, err)
		return
	}
	if content == nil {
		s.fail(w, &ErrNotFound{Resource: "tailored content", ID: id.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, ReconcileResponse{TailoredContent: content, Rejections: nonNil(rejections)})
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

func nonNil(rejections []types.Rejection) []types.Rejection {
	if rejections == nil {
		return []types.Rejection{}
	}
	return rejections
}
