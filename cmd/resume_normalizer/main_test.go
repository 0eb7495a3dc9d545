package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-normalizer/internal/pipeline"
	"github.com/jonathan/resume-normalizer/internal/server"
	"github.com/jonathan/resume-normalizer/internal/types"
)

const testResume = `{
  "profile": {"name": "Jane Doe", "email": "jane@example.com"},
  "workExperiences": [
    {"company": "Acme", "jobTitle": "Engineer", "date": "2021", "descriptions": ["Built $billing", "Led <team>"]},
    {"jobTitle": "No company"}
  ],
  "skills": {"featuredSkills": [], "descriptions": ["Languages: Go, Python", "Docker"]}
}`

// isolateEnv blanks every variable config.Load reads; blank values are
// ignored, so defaults apply.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TAILOR_ENDPOINT", "TAILOR_TIMEOUT", "TAILOR_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL",
		"DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "EXTRA_BULLETS", "PORT",
	} {
		t.Setenv(name, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNormalizeCommand_Single(t *testing.T) {
	resume := writeFile(t, "resume.json", testResume)
	tailored := writeFile(t, "tailored.json", `{"summary":"S","workExperience":["Did X"]}`)

	out, err := execute(t, "", "normalize", resume, "--tailored", tailored)
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Document.WorkExperiences, 1)
	assert.Equal(t, []string{"Built billing", "Led team"}, result.Document.WorkExperiences[0].Descriptions)
	assert.Equal(t, map[string][]string{"Languages": {"Go", "Python"}}, result.Skills.CategoryMap())
	assert.Equal(t, []string{"Docker"}, result.Skills.Uncategorized)
	require.NotNil(t, result.Tailored)
	assert.Equal(t, []types.TailoredExperience{{Company: "Acme", BulletPoints: []string{"Did X"}}}, result.Tailored.WorkExperience)
	assert.NotEmpty(t, result.Rejections)
}

func TestNormalizeCommand_Raw(t *testing.T) {
	resume := writeFile(t, "resume.json", testResume)

	out, err := execute(t, "", "normalize", "--raw", resume)
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"Built $billing", "Led <team>"}, result.Document.WorkExperiences[0].Descriptions)
}

func TestNormalizeCommand_Stdin(t *testing.T) {
	out, err := execute(t, `{"profile":{"name":"Stdin"}}`, "normalize", "-")
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Stdin", result.Document.Profile.Name)
}

func TestNormalizeCommand_Multiple(t *testing.T) {
	a := writeFile(t, "a.json", testResume)
	b := writeFile(t, "b.json", `not json`)
	outPath := filepath.Join(t.TempDir(), "nested", "out.json")

	_, err := execute(t, "", "normalize", a, b, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var results []pipeline.Result
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.Len(t, results[0].Document.WorkExperiences, 1)
	require.NotEmpty(t, results[1].Rejections)
	assert.Equal(t, types.ReasonInvalidJSON, results[1].Rejections[0].Code)
}

func TestNormalizeCommand_Errors(t *testing.T) {
	resume := writeFile(t, "resume.json", testResume)

	_, err := execute(t, "", "normalize", "/nonexistent/resume.json")
	assert.ErrorContains(t, err, "failed to read")

	_, err = execute(t, "", "normalize", resume, resume, "--tailored", resume)
	assert.ErrorContains(t, err, "--tailored requires exactly one resume")

	_, err = execute(t, "", "normalize")
	assert.Error(t, err)
}

func TestReconcileCommand(t *testing.T) {
	resume := writeFile(t, "resume.json", testResume)
	tailored := writeFile(t, "tailored.json", `{"workExperience":["a","b","c","d","e"]}`)

	out, err := execute(t, "", "reconcile", "--in", tailored, "--resume", resume)
	require.NoError(t, err)

	var resp server.ReconcileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []types.TailoredExperience{{Company: "Acme", BulletPoints: []string{"a", "b", "c", "d"}}}, resp.TailoredContent.WorkExperience)
	require.Len(t, resp.Rejections, 1)
	assert.Equal(t, types.ReasonTruncated, resp.Rejections[0].Code)
}

func TestReconcileCommand_FallbackFlagAndRepair(t *testing.T) {
	out, err := execute(t, `{"workExperience":["a"],"extra":1}`, "reconcile", "--in", "-", "--fallback-company", "Initech", "--repair")
	require.NoError(t, err)

	var repaired map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &repaired))
	assert.EqualValues(t, 1, repaired["extra"])
	assert.Equal(t, []any{map[string]any{"company": "Initech", "bulletPoints": []any{"a"}}}, repaired["workExperience"])
}

func TestReconcileCommand_MissingIn(t *testing.T) {
	_, err := execute(t, "", "reconcile")
	assert.ErrorContains(t, err, "required")
}

func TestCleanCommand(t *testing.T) {
	out, err := execute(t, "", "clean", "John $mith!", "• Go, Rust")
	require.NoError(t, err)
	assert.Equal(t, "John mith\n• Go, Rust\n", out)
}

func TestCleanCommand_DescriptionsFromStdin(t *testing.T) {
	out, err := execute(t, "• Built the billing service that\nscaled to 1M users\n• Mentored two engineers\n", "clean", "--descriptions")
	require.NoError(t, err)
	assert.Equal(t, "Built the billing service that scaled to 1M users\nMentored two engineers\n", out)
}

func TestExtractCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "extract", "/nonexistent/resume.pdf")
	assert.Error(t, err)

	notPDF := writeFile(t, "resume.pdf", "plain text")
	_, err = execute(t, "", "extract", notPDF)
	assert.Error(t, err)
}

func TestTailorCommand_Success(t *testing.T) {
	var received map[string]any
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"tailoredContent":{"summary":"Fit","workExperience":["Did X"]}}`))
	}))
	defer backend.Close()

	resume := writeFile(t, "resume.json", testResume)
	job := writeFile(t, "job.txt", "Senior Go engineer")

	configPath := writeFile(t, "config.json", `{"tailor_endpoint":"`+backend.URL+`","tailor_timeout":"2s"}`)

	out, err := execute(t, "", "--config", configPath, "tailor", "--resume", resume, "--job", job,
		"--session", "2f1b6d4e-8c1a-4b55-9d0e-3c2a1f0e9b7d")
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Tailored)
	assert.Equal(t, "Fit", result.Tailored.Summary)
	assert.Equal(t, "Acme", result.Tailored.WorkExperience[0].Company)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "Senior Go engineer", received["jobDescription"])
}

func TestTailorCommand_ReportsTailoredRejections(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"tailoredContent":{"workExperience":["A","B","C","D","E"]}}`))
	}))
	defer backend.Close()

	resume := writeFile(t, "resume.json", testResume)
	job := writeFile(t, "job.txt", "Senior Go engineer")
	configPath := writeFile(t, "config.json", `{"tailor_endpoint":"`+backend.URL+`"}`)

	out, err := execute(t, "", "--config", configPath, "tailor", "--resume", resume, "--job", job)
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Tailored)
	assert.Len(t, result.Tailored.WorkExperience[0].BulletPoints, 4)

	var tailored []types.Rejection
	for _, r := range result.Rejections {
		if r.Section == types.SectionTailored {
			tailored = append(tailored, r)
		}
	}
	require.Len(t, tailored, 1)
	assert.Equal(t, types.ReasonTruncated, tailored[0].Code)
}

func TestTailorCommand_ServiceFailureFallsBack(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	resume := writeFile(t, "resume.json", testResume)
	job := writeFile(t, "job.txt", "Senior Go engineer")
	configPath := writeFile(t, "config.json", `{"tailor_endpoint":"`+backend.URL+`"}`)

	out, err := execute(t, "", "--config", configPath, "tailor", "--resume", resume, "--job", job)
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Nil(t, result.Tailored)
	assert.Contains(t, result.Warnings, "AI service error: API returned status: 500")
	assert.Len(t, result.Document.WorkExperiences, 1)
}

func TestTailorCommand_PingFailureSkipsCall(t *testing.T) {
	posts := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts++
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	resume := writeFile(t, "resume.json", testResume)
	job := writeFile(t, "job.txt", "Senior Go engineer")
	configPath := writeFile(t, "config.json", `{"tailor_endpoint":"`+backend.URL+`"}`)

	out, err := execute(t, "", "--config", configPath, "tailor", "--ping", "--resume", resume, "--job", job)
	require.NoError(t, err)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result.Warnings, "AI service error: API returned status: 503")
	assert.Zero(t, posts)
}

func TestTailorCommand_InvalidSession(t *testing.T) {
	resume := writeFile(t, "resume.json", testResume)
	job := writeFile(t, "job.txt", "x")

	_, err := execute(t, "", "tailor", "--resume", resume, "--job", job, "--session", "nope")
	assert.ErrorContains(t, err, "invalid session id")
}

func TestRootCommand_InvalidLogFormat(t *testing.T) {
	_, err := execute(t, "", "--log-format", "xml", "clean", "x")
	assert.Error(t, err)
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "", "--config", "/nonexistent/config.json", "clean", "x")
	assert.ErrorContains(t, err, "failed to load config")
}

func TestNormalizeCommand_OutputValidatesAgainstSchema(t *testing.T) {
	resume := writeFile(t, "resume.json", testResume)
	outPath := filepath.Join(t.TempDir(), "result.json")

	_, err := execute(t, "", "normalize", resume, "--out", outPath)
	require.NoError(t, err)

	out, err := execute(t, "", "validate", "--schema", "normalize_result", "--json", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
}

func TestValidateCommand(t *testing.T) {
	valid := writeFile(t, "tailored.json", `{"workExperience":[{"company":"Acme","bulletPoints":["a"]}]}`)
	invalid := writeFile(t, "flat.json", `{"workExperience":["a"]}`)

	out, err := execute(t, "", "validate", "--schema", "tailored_content", "--json", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")

	out, err = execute(t, "", "validate", "--schema", "tailored_content", "--json", invalid)
	assert.Error(t, err)
	assert.Contains(t, out, "Validation failed")

	_, err = execute(t, "", "validate", "--schema", "no_such_schema", "--json", valid)
	assert.ErrorContains(t, err, "schema not found")
}

func TestNormalizeCommand_Summary(t *testing.T) {
	isolateEnv(t)
	resume := writeFile(t, "resume.json", testResume)

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--log-level", "disabled", "normalize", "--summary", resume})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stderr.String(), "NORMALIZED RESUME")
	assert.Contains(t, stderr.String(), "Languages: Go, Python")
	assert.Contains(t, stderr.String(), "ISSUES (1 rejected, 0 warnings)")
	assert.True(t, json.Valid(stdout.Bytes()))
}
