package validation

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-normalizer/internal/types"
)

// DecodeWorkExperiences decodes the workExperiences section. A missing
// section is an empty list; a section that is not a list is an empty list
// plus a rejection.
func DecodeWorkExperiences(raw any) ([]types.WorkExperience, []types.Rejection) {
	records, rejections := filterSection(raw, WorkExperienceContract)
	out := make([]types.WorkExperience, 0, len(records))
	for _, r := range records {
		out = append(out, types.WorkExperience{
			Company:      text(r, "company"),
			JobTitle:     text(r, "jobTitle"),
			Date:         text(r, "date"),
			Descriptions: textList(r, "descriptions"),
		})
	}
	return out, rejections
}

// DecodeEducations decodes the educations section. gpa is optional and kept
// only when it is text.
func DecodeEducations(raw any) ([]types.Education, []types.Rejection) {
	records, rejections := filterSection(raw, EducationContract)
	out := make([]types.Education, 0, len(records))
	for _, r := range records {
		out = append(out, types.Education{
			School:       text(r, "school"),
			Degree:       text(r, "degree"),
			Date:         text(r, "date"),
			GPA:          text(r, "gpa"),
			Descriptions: textList(r, "descriptions"),
		})
	}
	return out, rejections
}

// DecodeProjects decodes the projects section.
func DecodeProjects(raw any) ([]types.Project, []types.Rejection) {
	records, rejections := filterSection(raw, ProjectContract)
	out := make([]types.Project, 0, len(records))
	for _, r := range records {
		out = append(out, types.Project{
			Project:      text(r, "project"),
			Date:         text(r, "date"),
			Descriptions: textList(r, "descriptions"),
		})
	}
	return out, rejections
}

// DecodeProfile decodes the profile. Fields that are present but not text
// decode to "" with a rejection.
func DecodeProfile(raw any) (types.Profile, []types.Rejection) {
	var profile types.Profile
	if raw == nil {
		return profile, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return profile, []types.Rejection{wrongShape(types.SectionProfile, "profile is not an object")}
	}

	var rejections []types.Rejection
	field := func(name string) string {
		v, present := obj[name]
		if !present || v == nil {
			return ""
		}
		s, ok := v.(string)
		if !ok {
			rejections = append(rejections, types.Rejection{
				Section: types.SectionProfile,
				Index:   -1,
				Code:    types.ReasonWrongType,
				Reason:  fmt.Sprintf("%s: expected string, got %s", name, kindOf(v)),
			})
			return ""
		}
		return s
	}

	profile.Name = field("name")
	profile.Email = field("email")
	profile.Phone = field("phone")
	profile.URL = field("url")
	profile.Summary = field("summary")
	profile.Location = field("location")
	return profile, rejections
}

// DecodeSkills decodes the raw skills section. Featured skills must be
// objects with a text skill; a bare string is accepted as the skill itself.
func DecodeSkills(raw any) (types.Skills, []types.Rejection) {
	skills := types.Skills{FeaturedSkills: []types.FeaturedSkill{}, Descriptions: []string{}}
	if raw == nil {
		return skills, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return skills, []types.Rejection{wrongShape(types.SectionSkills, "skills is not an object")}
	}

	var rejections []types.Rejection

	featured, rejected := sequence(obj["featuredSkills"], types.SectionSkills, "featuredSkills")
	rejections = append(rejections, rejected...)
	for i, item := range featured {
		switch v := item.(type) {
		case string:
			skills.FeaturedSkills = append(skills.FeaturedSkills, types.FeaturedSkill{Skill: v})
		case map[string]any:
			name, ok := v["skill"].(string)
			if !ok {
				rejections = append(rejections, types.Rejection{
					Section: types.SectionSkills, Index: i, Code: types.ReasonMissingField,
					Reason: "featuredSkills: skill must be text",
				})
				continue
			}
			skills.FeaturedSkills = append(skills.FeaturedSkills, types.FeaturedSkill{Skill: name, Rating: rating(v["rating"])})
		default:
			rejections = append(rejections, types.Rejection{
				Section: types.SectionSkills, Index: i, Code: types.ReasonUnsupportedItem,
				Reason: fmt.Sprintf("featuredSkills: unsupported %s item", kindOf(item)),
			})
		}
	}

	descriptions, rejected := stringItems(obj["descriptions"], types.SectionSkills, "descriptions")
	skills.Descriptions = descriptions
	rejections = append(rejections, rejected...)
	return skills, rejections
}

// DecodeCustom decodes the custom section.
func DecodeCustom(raw any) (types.Custom, []types.Rejection) {
	custom := types.Custom{Descriptions: []string{}}
	if raw == nil {
		return custom, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return custom, []types.Rejection{wrongShape(types.SectionCustom, "custom is not an object")}
	}

	descriptions, rejections := stringItems(obj["descriptions"], types.SectionCustom, "descriptions")
	custom.Descriptions = descriptions
	return custom, rejections
}

func filterSection(raw any, contract Contract) ([]map[string]any, []types.Rejection) {
	records, rejections := sequence(raw, contract.Section, contract.Section)
	if records == nil {
		return nil, rejections
	}
	return FilterValid(records, contract)
}

// sequence returns raw as a list. nil raw is an absent section and is not
// reported.
func sequence(raw any, section, name string) ([]any, []types.Rejection) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, []types.Rejection{wrongShape(section, fmt.Sprintf("%s: expected list, got %s", name, kindOf(raw)))}
	}
	return list, nil
}

func stringItems(raw any, section, name string) ([]string, []types.Rejection) {
	out := []string{}
	list, rejections := sequence(raw, section, name)
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			rejections = append(rejections, types.Rejection{
				Section: section, Index: i, Code: types.ReasonWrongType,
				Reason: fmt.Sprintf("%s: expected string, got %s", name, kindOf(item)),
			})
			continue
		}
		out = append(out, s)
	}
	return out, rejections
}

func wrongShape(section, reason string) types.Rejection {
	return types.Rejection{Section: section, Index: -1, Code: types.ReasonWrongShape, Reason: reason}
}

func text(record map[string]any, name string) string {
	s, _ := record[name].(string)
	return s
}

// textList reads a list field that already passed the contract.
func textList(record map[string]any, name string) []string {
	items, _ := record[name].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func rating(v any) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
