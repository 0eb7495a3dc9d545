package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-normalizer/internal/types"
)

// MaxLegacyBullets is how many flat legacy bullets are kept when they are
// grouped under the fallback company.
const MaxLegacyBullets = 4

// Reconcile decodes raw tailored content in any known shape into the canonical
// shape. It never fails: malformed input yields an empty workExperience list,
// and every dropped or replaced fragment is reported as a rejection.
func Reconcile(raw []byte, tctx types.TailorContext) (*types.TailoredContent, []types.Rejection) {
	content := &types.TailoredContent{WorkExperience: []types.TailoredExperience{}}
	var rejections []types.Rejection

	root, ok := parseObject(raw)
	if !ok {
		code := types.ReasonWrongShape
		if !gjson.ValidBytes(raw) {
			code = types.ReasonInvalidJSON
		}
		return content, append(rejections, sectionRejection(code, "payload is not a JSON object"))
	}

	if summary := root.Get("summary"); summary.Type == gjson.String {
		content.Summary = summary.Str
	} else if summary.Exists() {
		rejections = append(rejections, types.Rejection{
			Section: types.SectionTailored, Index: -1,
			Code: types.ReasonWrongType, Reason: "summary is not text",
		})
	}

	we := root.Get(workExperienceKey)
	switch detect(we) {
	case ShapeFlatBullets:
		items := we.Array()
		if len(items) > MaxLegacyBullets {
			rejections = append(rejections, sectionRejection(types.ReasonTruncated,
				fmt.Sprintf("kept first %d of %d legacy bullets", MaxLegacyBullets, len(items))))
			items = items[:MaxLegacyBullets]
		}
		bullets, dropped := bulletTexts(items)
		rejections = append(rejections, dropped...)
		content.WorkExperience = []types.TailoredExperience{{
			Company:      tctx.FallbackCompany,
			BulletPoints: bullets,
		}}

	case ShapeMissingExperience:
		if we.Exists() {
			rejections = append(rejections, sectionRejection(types.ReasonWrongShape, "workExperience is not a list"))
		}

	case ShapeGroupedExperience:
		for i, rec := range we.Array() {
			bp := rec.Get("bulletPoints")
			if !bp.IsArray() {
				company := companyText(rec)
				if company == "" {
					company = types.DefaultCompanyLabel
				}
				content.WorkExperience = append(content.WorkExperience, types.TailoredExperience{
					Company:      company,
					BulletPoints: []string{},
				})
				rejections = append(rejections, types.Rejection{
					Section: types.SectionTailored, Index: i,
					Code: types.ReasonMissingField, Reason: "bulletPoints missing or not a list",
				})
				continue
			}

			bullets, dropped := bulletTexts(bp.Array())
			for _, d := range dropped {
				d.Index = i
				rejections = append(rejections, d)
			}
			content.WorkExperience = append(content.WorkExperience, types.TailoredExperience{
				Company:      companyText(rec),
				BulletPoints: bullets,
			})
		}
	}

	return content, rejections
}

// ReconcileValue reconciles an already decoded value, such as the
// tailoredContent field of a service response.
func ReconcileValue(v any, tctx types.TailorContext) (*types.TailoredContent, []types.Rejection) {
	raw, err := json.Marshal(v)
	if err != nil {
		content := &types.TailoredContent{WorkExperience: []types.TailoredExperience{}}
		return content, []types.Rejection{sectionRejection(types.ReasonInvalidJSON, err.Error())}
	}
	return Reconcile(raw, tctx)
}

// bulletTexts keeps text bullets. Numbers and booleans keep their JSON text;
// null, objects and arrays are dropped and reported.
func bulletTexts(items []gjson.Result) ([]string, []types.Rejection) {
	bullets := make([]string, 0, len(items))
	var dropped []types.Rejection
	for _, item := range items {
		if text, ok := scalarText(item); ok {
			bullets = append(bullets, text)
			continue
		}
		dropped = append(dropped, types.Rejection{
			Section: types.SectionTailored, Index: -1,
			Code: types.ReasonUnsupportedItem, Reason: fmt.Sprintf("bullet point %s is not text", item.Type),
		})
	}
	return bullets, dropped
}

func companyText(rec gjson.Result) string {
	text, _ := scalarText(rec.Get("company"))
	return text
}

func scalarText(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw, true
	default:
		return "", false
	}
}

func sectionRejection(code, reason string) types.Rejection {
	return types.Rejection{Section: types.SectionTailored, Index: -1, Code: code, Reason: reason}
}
