package tailor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-normalizer/internal/llm"
)

// GeminiTailorer tailors content by prompting a model directly instead of
// calling a separate service.
type GeminiTailorer struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewGeminiTailorer wraps client using the standard model tier.
func NewGeminiTailorer(client llm.Client) *GeminiTailorer {
	return &GeminiTailorer{Client: client, Tier: llm.TierStandard}
}

// Tailor asks the model for tailored content and returns its JSON answer.
func (g *GeminiTailorer) Tailor(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := llm.BuildTailorPrompt(req.Resume, req.JobDescription)
	out, err := g.Client.GenerateJSON(ctx, prompt, g.Tier)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Classify(errors.Wrap(ctxErr, "model call interrupted"))
		}
		return nil, &ServiceError{Kind: KindRejected, Err: errors.Wrap(err, "model call failed")}
	}

	if !gjson.Valid(out) || !gjson.Parse(out).IsObject() {
		return nil, &ServiceError{Kind: KindDecode, Err: errors.New("model did not return a JSON object")}
	}
	return []byte(out), nil
}
