package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-normalizer/internal/store"
	"github.com/jonathan/resume-normalizer/internal/tailor"
	"github.com/jonathan/resume-normalizer/internal/types"
)

type fakeTailorer struct {
	raw   []byte
	err   error
	delay time.Duration
	req   tailor.Request
}

func (f *fakeTailorer) Tailor(ctx context.Context, req tailor.Request) ([]byte, error) {
	f.req = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.raw, f.err
}

func acmeResume() *types.Resume {
	doc := types.NewResume()
	doc.WorkExperiences = []types.WorkExperience{{Company: "Acme", JobTitle: "Eng", Date: "2020", Descriptions: []string{}}}
	return doc
}

func TestTailor_StoresRawAndReturnsReconciled(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	client := &fakeTailorer{raw: []byte(`{"workExperience":["Did X","Did Y"]}`)}

	content, rejections, err := Tailor(ctx, client, kv, store.TailoredContentKey, acmeResume(), "Go role", time.Second)

	require.NoError(t, err)
	assert.Empty(t, rejections)
	assert.Equal(t, []types.TailoredExperience{{Company: "Acme", BulletPoints: []string{"Did X", "Did Y"}}}, content.WorkExperience)
	assert.Equal(t, "Go role", client.req.JobDescription)
	assert.Contains(t, string(client.req.Resume), `"company":"Acme"`)

	stored, ok, err := kv.Get(ctx, store.TailoredContentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"workExperience":["Did X","Did Y"]}`, string(stored))
}

func TestTailor_ReturnsReconcileRejections(t *testing.T) {
	client := &fakeTailorer{raw: []byte(`{"workExperience":["A","B",null,"D","E","F"]}`)}

	content, rejections, err := Tailor(context.Background(), client, store.NewMemoryStore(), "k", acmeResume(), "Go role", time.Second)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, content.WorkExperience[0].BulletPoints)
	codes := make([]string, len(rejections))
	for i, r := range rejections {
		codes[i] = r.Code
		assert.Equal(t, types.SectionTailored, r.Section)
	}
	assert.ElementsMatch(t, []string{types.ReasonTruncated, types.ReasonUnsupportedItem}, codes)
}

func TestTailor_FallsBackOnTimeout(t *testing.T) {
	kv := store.NewMemoryStore()
	client := &fakeTailorer{raw: []byte(`{}`), delay: time.Second}

	content, rejections, err := Tailor(context.Background(), client, kv, "k", acmeResume(), "Go role", 20*time.Millisecond)

	assert.Nil(t, content)
	assert.Nil(t, rejections)
	var serviceErr *tailor.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, tailor.KindTimeout, serviceErr.Kind)
	assert.Equal(t, "Connection to AI service timed out. Continuing with original resume.", serviceErr.Message())
	assert.Equal(t, 0, kv.Len())
}

func TestTailor_ServiceErrorPassesThrough(t *testing.T) {
	client := &fakeTailorer{err: &tailor.ServiceError{Kind: tailor.KindStatus, Status: 503}}

	_, _, err := Tailor(context.Background(), client, nil, "k", acmeResume(), "Go role", 0)

	var serviceErr *tailor.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, 503, serviceErr.Status)
}

type failingKV struct{ store.KV }

func (failingKV) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestTailor_StoreFailure(t *testing.T) {
	client := &fakeTailorer{raw: []byte(`{"workExperience":[]}`)}

	_, _, err := Tailor(context.Background(), client, failingKV{}, "k", acmeResume(), "Go role", time.Second)

	assert.ErrorContains(t, err, "failed to store tailored content")
	var serviceErr *tailor.ServiceError
	assert.False(t, errors.As(err, &serviceErr))
}

func TestLoadTailored_RepairsLegacyShape(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, "k", []byte(`{"summary":"S","workExperience":["A","B","C","D","E"],"extra":1}`)))

	content, rejections, err := LoadTailored(ctx, kv, "k", types.TailorContext{FallbackCompany: "Acme"})

	require.NoError(t, err)
	assert.Equal(t, "S", content.Summary)
	assert.Equal(t, []types.TailoredExperience{{Company: "Acme", BulletPoints: []string{"A", "B", "C", "D"}}}, content.WorkExperience)
	assert.Empty(t, rejections, "stored payload was already repaired")

	stored, _, _ := kv.Get(ctx, "k")
	assert.JSONEq(t, `{"summary":"S","workExperience":[{"company":"Acme","bulletPoints":["A","B","C","D"]}],"extra":1}`, string(stored))
}

func TestLoadTailored_Missing(t *testing.T) {
	content, rejections, err := LoadTailored(context.Background(), store.NewMemoryStore(), "k", types.TailorContext{})

	require.NoError(t, err)
	assert.Nil(t, content)
	assert.Nil(t, rejections)
}

func TestLoadTailored_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, "k", []byte(`not json`)))

	content, _, err := LoadTailored(ctx, kv, "k", types.TailorContext{})

	require.NoError(t, err)
	assert.Empty(t, content.WorkExperience)
	stored, _, _ := kv.Get(ctx, "k")
	assert.Equal(t, "not json", string(stored), "unparseable payloads are left alone")
}
