package types

import "fmt"

// Section names used in rejections.
const (
	SectionDocument        = "document"
	SectionProfile         = "profile"
	SectionWorkExperiences = "workExperiences"
	SectionEducations      = "educations"
	SectionProjects        = "projects"
	SectionSkills          = "skills"
	SectionCustom          = "custom"
	SectionTailored        = "tailoredContent"
)

// Reason codes for rejected or ignored fragments.
const (
	ReasonInvalidJSON     = "invalid_json"
	ReasonWrongShape      = "wrong_shape"
	ReasonMissingField    = "missing_field"
	ReasonWrongType       = "wrong_type"
	ReasonUnsupportedItem = "unsupported_item"
	ReasonTruncated       = "truncated"
)

// Rejection records a fragment that was dropped or replaced by a default.
// Index is -1 when the fragment is a whole section rather than a record.
type Rejection struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Reason  string `json:"reason"`
}

func (r Rejection) String() string {
	if r.Index < 0 {
		return fmt.Sprintf("%s: %s (%s)", r.Section, r.Reason, r.Code)
	}
	return fmt.Sprintf("%s[%d]: %s (%s)", r.Section, r.Index, r.Reason, r.Code)
}
