// Package skills classifies raw skill entries into labelled categories and
// flat skills.
package skills

import (
	"strings"

	"github.com/jonathan/resume-normalizer/internal/types"
)

// Entry is one parsed skill line: either a category with members, or flat
// skills. A blank line parses to the zero Entry.
type Entry struct {
	Label   string
	Members []string
	Flat    []string
}

// IsCategory reports whether the entry names a category.
func (e Entry) IsCategory() bool {
	return e.Label != ""
}

// ParseEntry parses "<label>: <a>, <b>" into a category. Only the first colon
// separates the label, so members may contain colons. A blank label or a
// blank rest makes the line a flat skill, split on commas when it has any.
// A rest of only commas ("Tools: ,") is a category with no members.
func ParseEntry(text string) Entry {
	if label, rest, ok := strings.Cut(text, ":"); ok {
		label, rest = strings.TrimSpace(label), strings.TrimSpace(rest)
		if label != "" && rest != "" {
			return Entry{Label: label, Members: splitList(rest)}
		}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Entry{}
	}
	if strings.Contains(trimmed, ",") {
		return Entry{Flat: splitList(trimmed)}
	}
	return Entry{Flat: []string{trimmed}}
}

// splitList splits on commas, trimming pieces and dropping empty ones.
func splitList(text string) []string {
	pieces := strings.Split(text, ",")
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Classify groups a skills section. Featured skills are processed before
// descriptions, each in order: the first entry for a label fixes its casing
// and position, later ones only append members. Members and flat skills are
// deduplicated keeping first occurrences.
func Classify(s types.Skills) types.ClassifiedSkills {
	entries := make([]string, 0, len(s.FeaturedSkills)+len(s.Descriptions))
	for _, fs := range s.FeaturedSkills {
		if strings.TrimSpace(fs.Skill) == "" {
			continue
		}
		entries = append(entries, fs.Skill)
	}
	entries = append(entries, s.Descriptions...)
	return ClassifyEntries(entries)
}

// ClassifyEntries classifies plain skill lines in order.
func ClassifyEntries(entries []string) types.ClassifiedSkills {
	var (
		categories []types.SkillCategory
		index      = make(map[string]int)
		flat       []string
	)

	for _, text := range entries {
		entry := ParseEntry(text)
		if !entry.IsCategory() {
			flat = append(flat, entry.Flat...)
			continue
		}

		i, exists := index[entry.Label]
		if !exists {
			categories = append(categories, types.SkillCategory{Label: entry.Label})
			i = len(categories) - 1
			index[entry.Label] = i
		}
		categories[i].Skills = append(categories[i].Skills, entry.Members...)
	}

	for i := range categories {
		categories[i].Skills = Dedup(categories[i].Skills)
	}

	return types.ClassifiedSkills{
		Categories:    categories,
		Uncategorized: Dedup(flat),
	}
}
