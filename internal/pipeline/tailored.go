package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-normalizer/internal/reconcile"
	"github.com/jonathan/resume-normalizer/internal/store"
	"github.com/jonathan/resume-normalizer/internal/tailor"
	"github.com/jonathan/resume-normalizer/internal/types"
)

// Tailor asks client for tailored content, bounded by timeout (the tailor
// default when zero). The raw payload is stored verbatim under key and the
// reconciled content returned with the fragments reconciliation dropped or
// defaulted. Service failures come back as *tailor.ServiceError with nil
// content; callers continue with the untailored document.
func Tailor(ctx context.Context, client tailor.Tailorer, kv store.KV, key string, doc *types.Resume, jobDescription string, timeout time.Duration) (*types.TailoredContent, []types.Rejection, error) {
	if timeout <= 0 {
		timeout = tailor.DefaultTimeout
	}

	resume, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, &tailor.ServiceError{Kind: tailor.KindInvalidRequest, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := client.Tailor(callCtx, tailor.Request{Resume: resume, JobDescription: jobDescription})
	if err != nil {
		return nil, nil, tailor.Classify(err)
	}

	content, rejections := reconcile.Reconcile(raw, types.TailorContextFor(doc))

	if kv != nil {
		if err := kv.Put(ctx, key, raw); err != nil {
			return nil, nil, fmt.Errorf("failed to store tailored content: %w", err)
		}
	}

	return content, rejections, nil
}

// LoadTailored reads the tailored content stored under key, rewrites the
// stored payload into the canonical shape when it is a legacy one, and
// returns the reconciled content. A missing key returns nil content.
func LoadTailored(ctx context.Context, kv store.KV, key string, tctx types.TailorContext) (*types.TailoredContent, []types.Rejection, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tailored content: %w", err)
	}
	if !ok {
		return nil, nil, nil
	}

	fixed, changed, err := reconcile.Repair(raw, tctx)
	if err == nil && changed {
		if err := kv.Put(ctx, key, fixed); err != nil {
			return nil, nil, fmt.Errorf("failed to store repaired tailored content: %w", err)
		}
		raw = fixed
	}

	content, rejections := reconcile.Reconcile(raw, tctx)
	return content, rejections, nil
}
