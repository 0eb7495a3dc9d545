package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-normalizer/internal/prompts"
)

// OutputField describes one field of the JSON a prompt asks the model for.
type OutputField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// TailoredContentFields is the canonical tailored content shape requested
// from the model.
func TailoredContentFields() []OutputField {
	return []OutputField{
		{
			Name:        "summary",
			Type:        `"string"`,
			Description: "Two or three sentence professional summary aimed at the job",
		},
		{
			Name:        "workExperience",
			Type:        `[{"company": "string", "bulletPoints": ["string"]}]`,
			Description: "For each company in the resume, up to 4 rewritten bullet points",
			Required:    true,
		},
	}
}

// BuildTailorPrompt constructs the prompt that tailors a resume document to a
// job description.
func BuildTailorPrompt(resume json.RawMessage, jobDescription string) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet(prompts.TailoringFile, "tailor-instructions"))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	fields := TailoredContentFields()
	for i, field := range fields {
		required := ""
		if field.Required {
			required = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s // %s", field.Name, field.Type, required, field.Description))
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString(prompts.Format(prompts.MustGet(prompts.TailoringFile, "tailor-context"), map[string]string{
		"JobDescription": strings.TrimSpace(jobDescription),
		"Resume":         string(resume),
	}))

	return sb.String()
}
