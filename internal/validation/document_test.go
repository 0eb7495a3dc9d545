package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-normalizer/internal/types"
)

const sampleDocument = `{
	"profile": {"name": "Ada Lovelace", "email": "ada@example.com", "phone": 5551234},
	"workExperiences": [
		{"company": "Acme", "jobTitle": "Engineer", "date": "2020 - Present", "descriptions": ["Built things"]},
		{"company": "Broken"}
	],
	"educations": [
		{"school": "MIT", "degree": "BS", "date": "2019", "gpa": "3.9"}
	],
	"projects": "not a list",
	"skills": {
		"featuredSkills": [{"skill": "Tools: Git", "rating": 4}, {"rating": 2}, "Go"],
		"descriptions": ["Cloud: AWS", 12]
	},
	"custom": {"descriptions": ["Volunteer"]},
	"unknown": true
}`

func TestDecodeDocument(t *testing.T) {
	doc, rejections := DecodeDocument([]byte(sampleDocument))
	require.NotNil(t, doc)

	assert.Equal(t, "Ada Lovelace", doc.Profile.Name)
	assert.Equal(t, "ada@example.com", doc.Profile.Email)
	assert.Equal(t, "", doc.Profile.Phone)

	require.Len(t, doc.WorkExperiences, 1)
	assert.Equal(t, "Acme", doc.WorkExperiences[0].Company)
	assert.Equal(t, []string{"Built things"}, doc.WorkExperiences[0].Descriptions)

	require.Len(t, doc.Educations, 1)
	assert.Equal(t, "3.9", doc.Educations[0].GPA)

	assert.NotNil(t, doc.Projects)
	assert.Empty(t, doc.Projects)

	assert.Equal(t, []types.FeaturedSkill{{Skill: "Tools: Git", Rating: 4}, {Skill: "Go"}}, doc.Skills.FeaturedSkills)
	assert.Equal(t, []string{"Cloud: AWS"}, doc.Skills.Descriptions)
	assert.Equal(t, []string{"Volunteer"}, doc.Custom.Descriptions)

	sections := make(map[string]int)
	for _, r := range rejections {
		sections[r.Section]++
	}
	assert.Equal(t, 1, sections[types.SectionProfile])
	assert.Equal(t, 1, sections[types.SectionWorkExperiences])
	assert.Equal(t, 1, sections[types.SectionProjects])
	assert.Equal(t, 2, sections[types.SectionSkills])
}

func TestDecodeDocument_InvalidJSON(t *testing.T) {
	doc, rejections := DecodeDocument([]byte(`{"profile":`))

	require.NotNil(t, doc)
	assert.Equal(t, types.NewResume(), doc)
	require.Len(t, rejections, 1)
	assert.Equal(t, types.ReasonInvalidJSON, rejections[0].Code)
	assert.Equal(t, -1, rejections[0].Index)
}

func TestDecodeDocument_NonObjectRoot(t *testing.T) {
	doc, rejections := DecodeDocument([]byte(`[1,2,3]`))

	assert.Equal(t, types.NewResume(), doc)
	require.Len(t, rejections, 1)
	assert.Equal(t, types.ReasonWrongShape, rejections[0].Code)
}

func TestDecodeDocument_NullAndEmpty(t *testing.T) {
	for _, raw := range []string{`null`, `{}`} {
		doc, rejections := DecodeDocument([]byte(raw))
		assert.Equal(t, types.NewResume(), doc, raw)
		assert.Empty(t, rejections, raw)
	}
}

func TestDecodeProfile_NotObject(t *testing.T) {
	profile, rejections := DecodeProfile("Ada")
	assert.Equal(t, types.Profile{}, profile)
	require.Len(t, rejections, 1)
	assert.Equal(t, types.ReasonWrongShape, rejections[0].Code)
	assert.Equal(t, types.DefaultDisplayName, profile.DisplayName())
}

func TestDecodeSkills_Defaults(t *testing.T) {
	skills, rejections := DecodeSkills(nil)
	assert.Empty(t, rejections)
	assert.NotNil(t, skills.FeaturedSkills)
	assert.NotNil(t, skills.Descriptions)

	skills, rejections = DecodeSkills([]any{"x"})
	assert.Len(t, rejections, 1)
	assert.Empty(t, skills.FeaturedSkills)
}

func TestDecodeCustom_NonStringItems(t *testing.T) {
	custom, rejections := DecodeCustom(map[string]any{"descriptions": []any{"a", nil, "b"}})
	assert.Equal(t, []string{"a", "b"}, custom.Descriptions)
	require.Len(t, rejections, 1)
	assert.Equal(t, 1, rejections[0].Index)
}

func TestUnmarshal_Error(t *testing.T) {
	_, err := Unmarshal([]byte("{"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, err.Error(), "invalid JSON")
}
