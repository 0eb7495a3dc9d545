// Package types provides type definitions for structured data used throughout the resume-normalizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DefaultDisplayName is shown in place of an empty profile name.
const DefaultDisplayName = "Resume"

// Resume is the canonical resume document handed to the renderer.
type Resume struct {
	Profile         Profile          `json:"profile"`
	WorkExperiences []WorkExperience `json:"workExperiences"`
	Educations      []Education      `json:"educations"`
	Projects        []Project        `json:"projects"`
	Skills          Skills           `json:"skills"`
	Custom          Custom           `json:"custom"`
}

// Profile holds the candidate's name and free-text contact fields.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	URL      string `json:"url"`
	Summary  string `json:"summary"`
	Location string `json:"location"`
}

// DisplayName returns the profile name, or DefaultDisplayName when it is empty.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return DefaultDisplayName
	}
	return p.Name
}

// WorkExperience is a single position held by the candidate.
type WorkExperience struct {
	Company      string   `json:"company"`
	JobTitle     string   `json:"jobTitle"`
	Date         string   `json:"date"`
	Descriptions []string `json:"descriptions"`
}

// Education is a single school entry.
type Education struct {
	School       string   `json:"school"`
	Degree       string   `json:"degree"`
	Date         string   `json:"date"`
	GPA          string   `json:"gpa,omitempty"`
	Descriptions []string `json:"descriptions"`
}

// Project is a single project entry.
type Project struct {
	Project      string   `json:"project"`
	Date         string   `json:"date"`
	Descriptions []string `json:"descriptions"`
}

// FeaturedSkill is a skill entry as entered in the form, optionally rated.
type FeaturedSkill struct {
	Skill  string `json:"skill"`
	Rating int    `json:"rating,omitempty"`
}

// Skills is the raw, pre-classification skills section.
type Skills struct {
	FeaturedSkills []FeaturedSkill `json:"featuredSkills"`
	Descriptions   []string        `json:"descriptions"`
}

// Custom is the free-form custom section.
type Custom struct {
	Descriptions []string `json:"descriptions"`
}

// NewResume returns an empty document with every list initialized, so it
// marshals with [] rather than null.
func NewResume() *Resume {
	return &Resume{
		WorkExperiences: []WorkExperience{},
		Educations:      []Education{},
		Projects:        []Project{},
		Skills: Skills{
			FeaturedSkills: []FeaturedSkill{},
			Descriptions:   []string{},
		},
		Custom: Custom{Descriptions: []string{}},
	}
}

// RepeatedLabels reports, for each position, whether the label equals the
// previous one. Renderers use it to suppress a repeated company or school name.
func RepeatedLabels(labels []string) []bool {
	repeated := make([]bool, len(labels))
	for i := 1; i < len(labels); i++ {
		repeated[i] = labels[i] == labels[i-1]
	}
	return repeated
}

// CompanyLabels returns the company of each work experience in order.
func (r *Resume) CompanyLabels() []string {
	labels := make([]string, len(r.WorkExperiences))
	for i, exp := range r.WorkExperiences {
		labels[i] = exp.Company
	}
	return labels
}

// SchoolLabels returns the school of each education entry in order.
func (r *Resume) SchoolLabels() []string {
	labels := make([]string, len(r.Educations))
	for i, edu := range r.Educations {
		labels[i] = edu.School
	}
	return labels
}
