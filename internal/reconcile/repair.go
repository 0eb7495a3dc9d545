package reconcile

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jonathan/resume-normalizer/internal/types"
)

// Repair rewrites the workExperience of a stored payload into the canonical
// shape, leaving every other key untouched. It reports whether anything
// changed so callers only write back when needed.
func Repair(raw []byte, tctx types.TailorContext) ([]byte, bool, error) {
	if !gjson.ValidBytes(raw) {
		return raw, false, &ParseError{Message: "stored tailored content is not valid JSON"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return raw, false, &ParseError{Message: "stored tailored content is not a JSON object"}
	}

	we := root.Get(workExperienceKey)
	switch detect(we) {
	case ShapeFlatBullets, ShapeMissingExperience:
		content, _ := Reconcile(raw, tctx)
		fixed, err := sjson.SetBytes(raw, workExperienceKey, content.WorkExperience)
		if err != nil {
			return raw, false, &ParseError{Message: "failed to rewrite workExperience", Cause: err}
		}
		return fixed, true, nil
	}

	fixed := raw
	changed := false
	for i, rec := range we.Array() {
		if rec.Get("bulletPoints").IsArray() {
			continue
		}
		path := workExperienceKey + "." + strconv.Itoa(i)

		var err error
		if rec.IsObject() {
			fixed, err = sjson.SetRawBytes(fixed, path+".bulletPoints", []byte("[]"))
			if err == nil && companyText(rec) == "" {
				fixed, err = sjson.SetBytes(fixed, path+".company", types.DefaultCompanyLabel)
			}
		} else {
			var placeholder []byte
			placeholder, err = json.Marshal(types.TailoredExperience{
				Company:      types.DefaultCompanyLabel,
				BulletPoints: []string{},
			})
			if err == nil {
				fixed, err = sjson.SetRawBytes(fixed, path, placeholder)
			}
		}
		if err != nil {
			return raw, false, &ParseError{Message: "failed to rewrite record " + strconv.Itoa(i), Cause: err}
		}
		changed = true
	}

	return fixed, changed, nil
}
