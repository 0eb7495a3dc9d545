package validation

import (
	"encoding/json"

	"github.com/jonathan/resume-normalizer/internal/types"
)

// Unmarshal decodes raw JSON into untyped values for the section decoders.
func Unmarshal(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &DecodeError{Message: "invalid JSON", Cause: err}
	}
	return v, nil
}

// DecodeDocument decodes and validates a whole resume document. It never
// fails: malformed sections fall back to their defaults, invalid records are
// dropped, and every such fragment is reported as a rejection. Invalid JSON
// yields the empty document.
func DecodeDocument(raw []byte) (*types.Resume, []types.Rejection) {
	doc := types.NewResume()

	v, err := Unmarshal(raw)
	if err != nil {
		return doc, []types.Rejection{{
			Section: types.SectionDocument, Index: -1, Code: types.ReasonInvalidJSON, Reason: err.Error(),
		}}
	}
	if v == nil {
		return doc, nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return doc, []types.Rejection{wrongShape(types.SectionDocument, "document is not an object, got "+kindOf(v))}
	}

	return DecodeValue(obj)
}

// DecodeValue decodes an already-unmarshaled document object.
func DecodeValue(obj map[string]any) (*types.Resume, []types.Rejection) {
	doc := types.NewResume()
	var all []types.Rejection
	var rejections []types.Rejection

	doc.Profile, rejections = DecodeProfile(obj["profile"])
	all = append(all, rejections...)
	doc.WorkExperiences, rejections = DecodeWorkExperiences(obj["workExperiences"])
	all = append(all, rejections...)
	doc.Educations, rejections = DecodeEducations(obj["educations"])
	all = append(all, rejections...)
	doc.Projects, rejections = DecodeProjects(obj["projects"])
	all = append(all, rejections...)
	doc.Skills, rejections = DecodeSkills(obj["skills"])
	all = append(all, rejections...)
	doc.Custom, rejections = DecodeCustom(obj["custom"])
	all = append(all, rejections...)

	return doc, all
}
