package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/pipeline"
	"github.com/jonathan/resume-normalizer/internal/store"
	"github.com/jonathan/resume-normalizer/internal/tailor"
)

type tailorOptions struct {
	resumePath string
	job        string
	session    string
	outPath    string
	ping       bool
	summary    bool
}

// pinger is implemented by tailorers that can probe their backend.
type pinger interface {
	Ping(ctx context.Context) error
}

func newTailorCmd(a *app) *cobra.Command {
	opts := &tailorOptions{}
	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Tailor a resume to a job description",
		Long: "Normalizes the resume, sends it with the job description to the configured AI service, " +
			"stores the raw tailored content under the session key and prints the normalized result. " +
			"Service failures are reported as a warning and the untailored result is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTailor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "Path to resume JSON (required, - for stdin)")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Job description file path or URL (required)")
	cmd.Flags().StringVar(&opts.session, "session", "", "Session UUID (default: new)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.ping, "ping", false, "Probe the AI service before tailoring")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a human-readable summary to stderr")

	for _, name := range []string{"resume", "job"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	return cmd
}

func (a *app) runTailor(cmd *cobra.Command, opts *tailorOptions) error {
	ctx := cmd.Context()

	sessionID := uuid.New()
	if opts.session != "" {
		parsed, err := uuid.Parse(opts.session)
		if err != nil {
			return fmt.Errorf("invalid session id %q: %w", opts.session, err)
		}
		sessionID = parsed
	}

	data, err := readInput(cmd, opts.resumePath)
	if err != nil {
		return err
	}
	jobDescription, err := tailor.LoadJobDescription(ctx, opts.job)
	if err != nil {
		return err
	}

	client, closeClient, err := a.newTailorer(ctx)
	if err != nil {
		return err
	}
	defer closeClient()

	kv, closeStore, err := a.newStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	result := pipeline.Normalize(pipeline.Input{Resume: data}, a.pipelineOptions())
	a.reportWarnings(result)

	if err := a.tailorResult(ctx, client, kv, sessionID, result, jobDescription, opts.ping); err != nil {
		return err
	}

	if opts.summary {
		printSummary(cmd, result)
	}
	return writeJSON(cmd, opts.outPath, result)
}

// tailorResult sets result.Tailored, or records a warning when the service
// is unavailable. Only store failures are returned.
func (a *app) tailorResult(ctx context.Context, client tailor.Tailorer, kv store.KV, sessionID uuid.UUID, result *pipeline.Result, jobDescription string, ping bool) error {
	if p, ok := client.(pinger); ok && ping {
		if err := p.Ping(ctx); err != nil {
			a.fallBack(result, tailor.Classify(err))
			return nil
		}
	}

	content, rejections, err := pipeline.Tailor(ctx, client, kv, store.SessionKey(sessionID), result.Document, jobDescription, a.cfg.Timeout(tailor.DefaultTimeout))
	var serviceErr *tailor.ServiceError
	switch {
	case errors.As(err, &serviceErr):
		a.fallBack(result, serviceErr)
	case err != nil:
		return err
	default:
		result.Tailored = content
		result.Rejections = append(result.Rejections, rejections...)
		a.logger.Info().Str("session", sessionID.String()).Int("experiences", len(content.WorkExperience)).Msg("tailored content stored")
	}
	return nil
}

// fallBack records a service failure as a warning on result; the document
// stays untailored.
func (a *app) fallBack(result *pipeline.Result, serviceErr *tailor.ServiceError) {
	a.logger.Warn().Err(serviceErr).Msg(serviceErr.Message())
	result.Warnings = append(result.Warnings, serviceErr.Message())
}
