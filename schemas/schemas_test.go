package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-normalizer/internal/schemas"
)

var schemaFiles = []string{
	"resume.schema.json",
	"tailored_content.schema.json",
	"normalize_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON")
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err)

			var v any
			require.NoError(t, json.Unmarshal(data, &v))
			_, err = schemas.Compile(v)
			assert.NoError(t, err)
		})
	}
}

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResumeSchema(t *testing.T) {
	valid := `{
		"profile": {"name": "Jane"},
		"workExperiences": [{"company": "Acme", "jobTitle": "Eng", "date": "2020", "descriptions": ["Built it"]}],
		"educations": [],
		"projects": [],
		"skills": {"featuredSkills": [{"skill": "Go", "rating": 4}], "descriptions": []},
		"custom": {"descriptions": []}
	}`
	assert.NoError(t, schemas.ValidateJSON("resume.schema.json", writeJSON(t, valid)))

	invalid := `{
		"profile": {},
		"workExperiences": [{"company": 1, "jobTitle": "Eng", "date": "2020", "descriptions": []}],
		"educations": [],
		"projects": [],
		"skills": {"featuredSkills": [], "descriptions": []},
		"custom": {"descriptions": []}
	}`
	err := schemas.ValidateJSON("resume.schema.json", writeJSON(t, invalid))
	var validationErr *schemas.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "workExperiences.0.company", validationErr.Errors[0].Field)
}

func TestTailoredContentSchema(t *testing.T) {
	assert.NoError(t, schemas.ValidateJSON("tailored_content.schema.json",
		writeJSON(t, `{"summary":"S","workExperience":[{"company":"Acme","bulletPoints":["a"]}],"extra":true}`)))

	assert.Error(t, schemas.ValidateJSON("tailored_content.schema.json",
		writeJSON(t, `{"workExperience":["flat bullet"]}`)))
}

func TestNormalizeResultSchema(t *testing.T) {
	valid := `{
		"document": {},
		"skills": {"categories": [{"label": "Languages", "skills": ["Go", "Python"]}], "uncategorized": null},
		"rejections": [{"section": "document", "index": -1, "code": "invalid_json", "reason": "bad"}],
		"warnings": []
	}`
	assert.NoError(t, schemas.ValidateJSON("normalize_result.schema.json", writeJSON(t, valid)))

	duplicate := `{
		"document": {},
		"skills": {"categories": [], "uncategorized": ["Go", "Go"]},
		"rejections": [],
		"warnings": []
	}`
	assert.Error(t, schemas.ValidateJSON("normalize_result.schema.json", writeJSON(t, duplicate)))
}
