package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/reconcile"
	"github.com/jonathan/resume-normalizer/internal/server"
	"github.com/jonathan/resume-normalizer/internal/types"
	"github.com/jonathan/resume-normalizer/internal/validation"
)

type reconcileOptions struct {
	inPath          string
	resumePath      string
	fallbackCompany string
	outPath         string
	repair          bool
}

func newReconcileCmd(a *app) *cobra.Command {
	opts := &reconcileOptions{}
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile AI-tailored content into the canonical shape",
		Long: "Reads tailored content in any supported shape and prints it grouped by company. " +
			"Flat bullet lists are attributed to --fallback-company, or to the first company of --resume. " +
			"With --repair the payload is rewritten in place of reconciling, keeping unknown keys.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReconcile(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "Path to tailored content JSON (required, - for stdin)")
	cmd.Flags().StringVar(&opts.resumePath, "resume", "", "Resume JSON supplying the fallback company")
	cmd.Flags().StringVar(&opts.fallbackCompany, "fallback-company", "", "Company for bullets without one")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.repair, "repair", false, "Rewrite the payload into the canonical shape")

	if err := cmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	return cmd
}

func (a *app) runReconcile(cmd *cobra.Command, opts *reconcileOptions) error {
	raw, err := readInput(cmd, opts.inPath)
	if err != nil {
		return err
	}

	var tctx types.TailorContext
	if opts.resumePath != "" {
		data, err := readInput(cmd, opts.resumePath)
		if err != nil {
			return err
		}
		doc, _ := validation.DecodeDocument(data)
		tctx = types.TailorContextFor(doc)
	}
	if opts.fallbackCompany != "" {
		tctx.FallbackCompany = opts.fallbackCompany
	}

	if opts.repair {
		fixed, changed, err := reconcile.Repair(raw, tctx)
		if err != nil {
			return fmt.Errorf("failed to repair tailored content: %w", err)
		}
		a.logger.Info().Bool("changed", changed).Msg("repaired tailored content")

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, fixed, "", "  "); err != nil {
			return fmt.Errorf("failed to format repaired content: %w", err)
		}
		if err := writeOutput(cmd, opts.outPath, pretty.Bytes()); err != nil {
			return err
		}
		return a.checkOutput(schemaTailoredContent, opts.outPath)
	}

	content, rejections := reconcile.Reconcile(raw, tctx)
	for _, r := range rejections {
		a.logger.Debug().Str("rejection", r.String()).Msg("tailored content fragment rejected")
	}
	if rejections == nil {
		rejections = []types.Rejection{}
	}
	return writeJSON(cmd, opts.outPath, server.ReconcileResponse{TailoredContent: content, Rejections: rejections})
}
