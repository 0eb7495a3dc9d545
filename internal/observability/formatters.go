// Package observability provides human-readable summaries of normalization
// results for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-normalizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for summary mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // summary output; write errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		pad := boxWidth - 4 - utf8.RuneCountInString(line)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeMore appends an "... and N more" line when total exceeds shown.
func writeMore(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		fmt.Fprintf(sb, "  ... and %d more %s\n", total-shown, noun)
	}
}

// PrintDocument outputs the profile and one line per entry. A company or
// school equal to the previous entry's is shown as a ditto mark.
func (p *Printer) PrintDocument(doc *types.Resume) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:  %s\n", doc.Profile.DisplayName())
	if doc.Profile.Email != "" {
		fmt.Fprintf(&sb, "Email: %s\n", doc.Profile.Email)
	}

	if len(doc.WorkExperiences) > 0 {
		sb.WriteString("\nWork Experience:\n")
		repeated := types.RepeatedLabels(doc.CompanyLabels())
		count := min(len(doc.WorkExperiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.WorkExperiences[i]
			company := exp.Company
			if repeated[i] {
				company = `  "`
			}
			fmt.Fprintf(&sb, "  • %s, %s (%d bullets)\n", company, exp.JobTitle, len(exp.Descriptions))
		}
		writeMore(&sb, len(doc.WorkExperiences), count, "positions")
	}

	if len(doc.Educations) > 0 {
		sb.WriteString("\nEducation:\n")
		repeated := types.RepeatedLabels(doc.SchoolLabels())
		for i, edu := range doc.Educations {
			school := edu.School
			if repeated[i] {
				school = `  "`
			}
			fmt.Fprintf(&sb, "  • %s, %s\n", school, edu.Degree)
		}
	}

	if n := len(doc.Projects); n > 0 {
		fmt.Fprintf(&sb, "\nProjects: %d\n", n)
	}

	p.printBox("NORMALIZED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs each category with its members, then flat skills.
func (p *Printer) PrintSkills(skills *types.ClassifiedSkills) {
	if skills == nil || skills.IsEmpty() {
		return
	}

	var sb strings.Builder
	for _, cat := range skills.Categories {
		fmt.Fprintf(&sb, "%s: %s\n", cat.Label, strings.Join(cat.Skills, ", "))
	}
	if len(skills.Uncategorized) > 0 {
		if len(skills.Categories) > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Other: %s\n", strings.Join(skills.Uncategorized, ", "))
	}

	p.printBox("CLASSIFIED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailored outputs the tailored summary and bullets grouped by company.
func (p *Printer) PrintTailored(content *types.TailoredContent) {
	if content == nil {
		return
	}

	var sb strings.Builder
	if content.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n\n", content.Summary)
	}
	fmt.Fprintf(&sb, "%d bullets across %d companies\n", len(content.AllBulletPoints()), len(content.WorkExperience))
	for _, exp := range content.WorkExperience {
		company := exp.Company
		if company == "" {
			company = "(no company)"
		}
		fmt.Fprintf(&sb, "\n%s\n", company)
		count := min(len(exp.BulletPoints), maxItemsToShow)
		for _, bullet := range exp.BulletPoints[:count] {
			fmt.Fprintf(&sb, "  • %s\n", bullet)
		}
		writeMore(&sb, len(exp.BulletPoints), count, "bullets")
	}

	p.printBox("TAILORED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues outputs rejections and warnings. Nothing is printed when there
// are none.
func (p *Printer) PrintIssues(rejections []types.Rejection, warnings []string) {
	if len(rejections) == 0 && len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&sb, "⚠ %s\n", w)
	}
	if len(warnings) > 0 && len(rejections) > 0 {
		sb.WriteString("\n")
	}
	count := min(len(rejections), maxItemsToShow)
	for _, r := range rejections[:count] {
		fmt.Fprintf(&sb, "✗ %s\n", r.String())
	}
	writeMore(&sb, len(rejections), count, "rejections")

	p.printBox(fmt.Sprintf("ISSUES (%d rejected, %d warnings)", len(rejections), len(warnings)), strings.TrimSuffix(sb.String(), "\n"))
}
