// Package validation checks candidate resume records against minimal field
// contracts and decodes the surviving records into typed values.
package validation

import (
	"github.com/jonathan/resume-normalizer/internal/schemas"
	"github.com/jonathan/resume-normalizer/internal/types"
)

// FieldKind is the declared kind of a contract field.
type FieldKind int

const (
	// KindText fields must be present and string-typed. Empty is allowed.
	KindText FieldKind = iota
	// KindList fields must be arrays of strings when present; absent or null
	// lists default to an empty list.
	KindList
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// FieldSpec names one required field and its kind.
type FieldSpec struct {
	Name string
	Kind FieldKind
}

// Contract is the ordered set of fields a record of one section must carry.
type Contract struct {
	Section string
	Fields  []FieldSpec
}

// Record contracts for the list sections of a resume.
var (
	WorkExperienceContract = Contract{
		Section: types.SectionWorkExperiences,
		Fields: []FieldSpec{
			{Name: "company", Kind: KindText},
			{Name: "jobTitle", Kind: KindText},
			{Name: "date", Kind: KindText},
			{Name: "descriptions", Kind: KindList},
		},
	}

	EducationContract = Contract{
		Section: types.SectionEducations,
		Fields: []FieldSpec{
			{Name: "school", Kind: KindText},
			{Name: "degree", Kind: KindText},
			{Name: "date", Kind: KindText},
			{Name: "descriptions", Kind: KindList},
		},
	}

	ProjectContract = Contract{
		Section: types.SectionProjects,
		Fields: []FieldSpec{
			{Name: "project", Kind: KindText},
			{Name: "date", Kind: KindText},
			{Name: "descriptions", Kind: KindList},
		},
	}
)

// JSONSchema renders the contract as a JSON Schema document. Extra fields
// are allowed.
func (c Contract) JSONSchema() map[string]any {
	properties := make(map[string]any, len(c.Fields))
	required := make([]any, 0, len(c.Fields))

	for _, field := range c.Fields {
		switch field.Kind {
		case KindText:
			properties[field.Name] = map[string]any{"type": "string"}
			required = append(required, field.Name)
		case KindList:
			properties[field.Name] = map[string]any{
				"type":  []any{"array", "null"},
				"items": map[string]any{"type": "string"},
			}
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Compile compiles the contract's schema.
func (c Contract) Compile() (*schemas.Schema, error) {
	compiled, err := schemas.Compile(c.JSONSchema())
	if err != nil {
		return nil, &ContractError{Section: c.Section, Cause: err}
	}
	return compiled, nil
}

func (c Contract) listFields() []string {
	var names []string
	for _, field := range c.Fields {
		if field.Kind == KindList {
			names = append(names, field.Name)
		}
	}
	return names
}
