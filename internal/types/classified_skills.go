package types

// SkillCategory is a user-defined skill grouping and its ordered members.
type SkillCategory struct {
	Label  string   `json:"label"`
	Skills []string `json:"skills"`
}

// ClassifiedSkills is the skills section after classification. Categories keep
// the order in which their labels were first seen.
type ClassifiedSkills struct {
	Categories    []SkillCategory `json:"categories"`
	Uncategorized []string        `json:"uncategorized"`
}

// Category returns the members of the category with the given label.
func (c *ClassifiedSkills) Category(label string) ([]string, bool) {
	for _, cat := range c.Categories {
		if cat.Label == label {
			return cat.Skills, true
		}
	}
	return nil, false
}

// CategoryMap returns the categories keyed by label.
func (c *ClassifiedSkills) CategoryMap() map[string][]string {
	m := make(map[string][]string, len(c.Categories))
	for _, cat := range c.Categories {
		m[cat.Label] = cat.Skills
	}
	return m
}

// IsEmpty reports whether no skills were classified.
func (c *ClassifiedSkills) IsEmpty() bool {
	return len(c.Categories) == 0 && len(c.Uncategorized) == 0
}
