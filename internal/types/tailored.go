package types

// DefaultCompanyLabel replaces a missing company on tailored records that had
// no bullet points list.
const DefaultCompanyLabel = "Company"

// TailoredContent is AI-tailored resume content in its canonical shape.
type TailoredContent struct {
	Summary        string               `json:"summary,omitempty"`
	WorkExperience []TailoredExperience `json:"workExperience"`
}

// TailoredExperience groups tailored bullet points under a company.
type TailoredExperience struct {
	Company      string   `json:"company"`
	BulletPoints []string `json:"bulletPoints"`
}

// TailorContext carries caller-supplied defaults used while reconciling
// tailored content.
type TailorContext struct {
	// FallbackCompany is attributed to bullets that arrive without a company.
	FallbackCompany string
}

// TailorContextFor derives the reconciliation context from a document: the
// first work experience's company, or "" when there is none.
func TailorContextFor(doc *Resume) TailorContext {
	if doc == nil || len(doc.WorkExperiences) == 0 {
		return TailorContext{}
	}
	return TailorContext{FallbackCompany: doc.WorkExperiences[0].Company}
}

// AllBulletPoints returns every bullet point across all experiences in order.
func (t *TailoredContent) AllBulletPoints() []string {
	var bullets []string
	for _, exp := range t.WorkExperience {
		bullets = append(bullets, exp.BulletPoints...)
	}
	return bullets
}
