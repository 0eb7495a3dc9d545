// Package pipeline orchestrates normalization of a resume document and its
// tailored content.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-normalizer/internal/reconcile"
	"github.com/jonathan/resume-normalizer/internal/sanitize"
	"github.com/jonathan/resume-normalizer/internal/skills"
	"github.com/jonathan/resume-normalizer/internal/types"
	"github.com/jonathan/resume-normalizer/internal/validation"
)

// Stages reported through Options.OnProgress.
const (
	StageDecode    = "decode"
	StageSanitize  = "sanitize"
	StageClassify  = "classify"
	StageReconcile = "reconcile"
)

// ProgressEvent represents a progress update during normalization
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ProgressCallback is called when a stage completes
type ProgressCallback func(event ProgressEvent)

// Options configures Normalize.
type Options struct {
	Bullets              sanitize.BulletSet
	SanitizeDescriptions bool
	Logger               zerolog.Logger
	OnProgress           ProgressCallback
}

// DefaultOptions sanitizes with the default bullet alphabet and logs nothing.
func DefaultOptions() Options {
	return Options{
		Bullets:              sanitize.DefaultBullets(),
		SanitizeDescriptions: true,
		Logger:               zerolog.Nop(),
	}
}

// Input is the raw material for one normalization. Tailored is optional.
type Input struct {
	Resume   []byte
	Tailored []byte
}

// Result is the canonical output handed to the renderer.
type Result struct {
	Document   *types.Resume          `json:"document"`
	Skills     types.ClassifiedSkills `json:"skills"`
	Tailored   *types.TailoredContent `json:"tailored,omitempty"`
	Rejections []types.Rejection      `json:"rejections"`
	Warnings   []string               `json:"warnings"`
}

// Normalize decodes and validates the resume, sanitizes its descriptions and
// skill entries, classifies skills, and reconciles tailored content against
// the document's first company. It never fails: a panic in any stage is
// turned into a warning and the document built so far is returned.
func Normalize(in Input, opts Options) (result *Result) {
	result = &Result{
		Document:   types.NewResume(),
		Rejections: []types.Rejection{},
		Warnings:   []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("Failed to process resume: %v", r)
			result.Warnings = append(result.Warnings, msg)
			opts.Logger.Error().Interface("panic", r).Msg("normalization aborted")
		}
	}()

	doc, rejections := validation.DecodeDocument(in.Resume)
	result.Document = doc
	result.addRejections(opts.Logger, rejections)
	emitProgress(&opts, StageDecode, fmt.Sprintf("Decoded %d work experiences, %d educations, %d projects",
		len(doc.WorkExperiences), len(doc.Educations), len(doc.Projects)))

	if opts.SanitizeDescriptions {
		SanitizeDocument(doc, opts.Bullets)
		emitProgress(&opts, StageSanitize, "Sanitized descriptions and skill entries")
	}

	result.Skills = skills.Classify(doc.Skills)
	emitProgress(&opts, StageClassify, fmt.Sprintf("Classified skills into %d categories and %d flat skills",
		len(result.Skills.Categories), len(result.Skills.Uncategorized)))

	if in.Tailored != nil {
		tailored, rejections := reconcile.Reconcile(in.Tailored, types.TailorContextFor(doc))
		result.Tailored = tailored
		result.addRejections(opts.Logger, rejections)
		emitProgress(&opts, StageReconcile, fmt.Sprintf("Reconciled %d tailored experiences", len(tailored.WorkExperience)))
	}

	return result
}

// SanitizeDocument cleans every description list and skill entry of doc in
// place. Profile fields are left untouched.
func SanitizeDocument(doc *types.Resume, bullets sanitize.BulletSet) {
	for i := range doc.WorkExperiences {
		doc.WorkExperiences[i].Descriptions = sanitize.CleanAll(doc.WorkExperiences[i].Descriptions, bullets)
	}
	for i := range doc.Educations {
		doc.Educations[i].Descriptions = sanitize.CleanAll(doc.Educations[i].Descriptions, bullets)
	}
	for i := range doc.Projects {
		doc.Projects[i].Descriptions = sanitize.CleanAll(doc.Projects[i].Descriptions, bullets)
	}
	for i := range doc.Skills.FeaturedSkills {
		doc.Skills.FeaturedSkills[i].Skill = sanitize.Clean(doc.Skills.FeaturedSkills[i].Skill, bullets)
	}
	doc.Skills.Descriptions = sanitize.CleanAll(doc.Skills.Descriptions, bullets)
	doc.Custom.Descriptions = sanitize.CleanAll(doc.Custom.Descriptions, bullets)
}

func (r *Result) addRejections(logger zerolog.Logger, rejections []types.Rejection) {
	for _, rej := range rejections {
		logger.Debug().
			Str("section", rej.Section).
			Int("index", rej.Index).
			Str("code", rej.Code).
			Msg(rej.Reason)
	}
	r.Rejections = append(r.Rejections, rejections...)
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, stage, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Message: message})
	}
}
