package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/sanitize"
)

type cleanOptions struct {
	inPath       string
	descriptions bool
}

func newCleanCmd(a *app) *cobra.Command {
	opts := &cleanOptions{}
	cmd := &cobra.Command{
		Use:   "clean [text]...",
		Short: "Strip disallowed characters from text",
		Long: "Cleans each argument, or each line of --in (stdin when neither is given), keeping " +
			"letters, digits, whitespace, bullet glyphs and common punctuation. With --descriptions " +
			"the cleaned lines are regrouped into bullet descriptions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClean(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inPath, "in", "i", "", "Read lines from this file")
	cmd.Flags().BoolVar(&opts.descriptions, "descriptions", false, "Group lines into bullet descriptions")
	return cmd
}

func (a *app) runClean(cmd *cobra.Command, args []string, opts *cleanOptions) error {
	lines := args
	if len(lines) == 0 {
		path := opts.inPath
		if path == "" {
			path = "-"
		}
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		lines = splitLines(data)
	}

	bullets := a.bullets()
	cleaned := sanitize.CleanAll(lines, bullets)
	if opts.descriptions {
		cleaned = sanitize.DescriptionsFromLines(cleaned, bullets)
	}

	out := cmd.OutOrStdout()
	for _, line := range cleaned {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}
