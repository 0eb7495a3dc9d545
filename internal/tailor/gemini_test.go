package tailor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-normalizer/internal/llm"
)

type fakeModel struct {
	out    string
	err    error
	prompt string
	tier   llm.ModelTier
}

func (f *fakeModel) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeModel) Close() error { return nil }

func TestGeminiTailorer_Success(t *testing.T) {
	model := &fakeModel{out: `{"workExperience":[{"company":"Acme","bulletPoints":["Shipped Go services"]}]}`}

	raw, err := NewGeminiTailorer(model).Tailor(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.JSONEq(t, model.out, string(raw))
	assert.Equal(t, llm.TierStandard, model.tier)
	assert.Contains(t, model.prompt, "Go engineer")
}

func TestGeminiTailorer_NotObject(t *testing.T) {
	model := &fakeModel{out: `["Did X"]`}

	_, err := NewGeminiTailorer(model).Tailor(context.Background(), sampleRequest())

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, KindDecode, serviceErr.Kind)
}

func TestGeminiTailorer_ModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("quota")}

	_, err := NewGeminiTailorer(model).Tailor(context.Background(), sampleRequest())

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, KindRejected, serviceErr.Kind)
	assert.Contains(t, serviceErr.Message(), "quota")
}

func TestGeminiTailorer_DeadlineExceeded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	model := &fakeModel{err: context.DeadlineExceeded}

	_, err := NewGeminiTailorer(model).Tailor(ctx, sampleRequest())

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, KindTimeout, serviceErr.Kind)
}
