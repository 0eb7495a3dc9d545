package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/pipeline"
)

type normalizeOptions struct {
	tailoredPath string
	outPath      string
	raw          bool
	summary      bool
}

func newNormalizeCmd(a *app) *cobra.Command {
	opts := &normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize <resume.json>...",
		Short: "Validate, sanitize and classify resume documents",
		Long: "Decodes each resume JSON document, drops malformed records, sanitizes description " +
			"bullets and skill entries, and classifies skills. With one input and --tailored, the " +
			"tailored content is reconciled against the resume. Use - to read stdin.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNormalize(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tailoredPath, "tailored", "t", "", "Path to tailored content JSON to reconcile")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Skip text sanitization")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a human-readable summary to stderr")
	return cmd
}

func (a *app) runNormalize(cmd *cobra.Command, args []string, opts *normalizeOptions) error {
	popts := a.pipelineOptions()
	popts.SanitizeDescriptions = !opts.raw

	if len(args) > 1 {
		if opts.tailoredPath != "" {
			return fmt.Errorf("--tailored requires exactly one resume")
		}
		results, err := pipeline.NormalizeFiles(cmd.Context(), args, popts)
		if err != nil {
			return err
		}
		for _, r := range results {
			a.reportWarnings(r)
			if opts.summary {
				printSummary(cmd, r)
			}
		}
		return writeJSON(cmd, opts.outPath, results)
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	in := pipeline.Input{Resume: data}
	if opts.tailoredPath != "" {
		if in.Tailored, err = readInput(cmd, opts.tailoredPath); err != nil {
			return err
		}
	}

	result := pipeline.Normalize(in, popts)
	a.reportWarnings(result)
	if opts.summary {
		printSummary(cmd, result)
	}
	if err := writeJSON(cmd, opts.outPath, result); err != nil {
		return err
	}
	return a.checkOutput(schemaNormalizeResult, opts.outPath)
}
