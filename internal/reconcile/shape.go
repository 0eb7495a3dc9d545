// Package reconcile rewrites tailored content stored in any of its historical
// shapes into the canonical company-grouped shape.
package reconcile

import "github.com/tidwall/gjson"

// Shape identifies which known layout a tailored-content payload uses.
type Shape int

const (
	// ShapeFlatBullets is the pre-grouping layout: workExperience is a list of
	// bullet strings with no company.
	ShapeFlatBullets Shape = iota
	// ShapeMissingExperience has no workExperience list at all, or the payload
	// is not a JSON object.
	ShapeMissingExperience
	// ShapeGroupedExperience is a list of company records, some of which may
	// lack a bulletPoints list.
	ShapeGroupedExperience
)

func (s Shape) String() string {
	switch s {
	case ShapeFlatBullets:
		return "flat_bullets"
	case ShapeMissingExperience:
		return "missing_experience"
	case ShapeGroupedExperience:
		return "grouped_experience"
	default:
		return "unknown"
	}
}

const workExperienceKey = "workExperience"

// shapes is matched in order; the first predicate that holds wins. The last
// entry always matches.
var shapes = []struct {
	shape Shape
	match func(workExperience gjson.Result) bool
}{
	{ShapeFlatBullets, func(we gjson.Result) bool {
		return we.IsArray() && we.Get("0").Type == gjson.String
	}},
	{ShapeMissingExperience, func(we gjson.Result) bool {
		return !we.IsArray()
	}},
	{ShapeGroupedExperience, func(gjson.Result) bool {
		return true
	}},
}

// Detect reports the shape of raw. Invalid JSON and non-object payloads are
// ShapeMissingExperience.
func Detect(raw []byte) Shape {
	root, ok := parseObject(raw)
	if !ok {
		return ShapeMissingExperience
	}
	return detect(root.Get(workExperienceKey))
}

func detect(we gjson.Result) Shape {
	for _, s := range shapes {
		if s.match(we) {
			return s.shape
		}
	}
	return ShapeMissingExperience
}

func parseObject(raw []byte) (gjson.Result, bool) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, false
	}
	root := gjson.ParseBytes(raw)
	return root, root.IsObject()
}
