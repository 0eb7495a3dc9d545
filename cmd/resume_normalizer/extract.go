package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/pdftext"
	"github.com/jonathan/resume-normalizer/internal/sanitize"
)

type extractOptions struct {
	outPath      string
	descriptions bool
	raw          bool
}

type extractOutput struct {
	Pages        [][]string `json:"pages"`
	Descriptions []string   `json:"descriptions,omitempty"`
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract <resume.pdf>",
		Short: "Extract text lines from a PDF",
		Long: "Extracts text rows per page from a PDF, normalizes them (NFKC, collapsed whitespace) " +
			"and sanitizes them. With --descriptions all lines are also grouped into bullet descriptions.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.descriptions, "descriptions", false, "Group lines into bullet descriptions")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Skip text sanitization")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, path string, opts *extractOptions) error {
	pages, err := pdftext.ExtractPages(path)
	if err != nil {
		return err
	}

	bullets := a.bullets()
	if !opts.raw {
		pages = sanitize.CleanPages(pages, bullets)
	}
	a.logger.Info().Str("path", path).Int("pages", len(pages)).Msg("extracted PDF text")

	out := extractOutput{Pages: pages}
	if opts.descriptions {
		out.Descriptions = sanitize.DescriptionsFromLines(pdftext.Lines(pages), bullets)
	}
	return writeJSON(cmd, opts.outPath, out)
}
