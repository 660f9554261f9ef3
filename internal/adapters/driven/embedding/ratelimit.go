// Package embedding holds decorators shared by the embedding adapters.
package embedding

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/ocean48/oceanbot/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimited paces calls to an embedding provider with a token bucket.
// Each Embed or EmbedBatch call takes one token.
type RateLimited struct {
	driven.EmbeddingService
	bucket *rate.Limiter
}

// NewRateLimited wraps svc so that at most rps calls start per second.
// A non-positive rps returns svc unchanged.
func NewRateLimited(svc driven.EmbeddingService, rps float64) driven.EmbeddingService {
	if rps <= 0 || svc == nil {
		return svc
	}
	return &RateLimited{
		EmbeddingService: svc,
		bucket:           rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Embed waits for a token, then embeds text.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.bucket.Wait(ctx); err != nil {
		return nil, err
	}
	return r.EmbeddingService.Embed(ctx, text)
}

// EmbedBatch waits for a token, then embeds texts.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := r.bucket.Wait(ctx); err != nil {
		return nil, err
	}
	return r.EmbeddingService.EmbedBatch(ctx, texts)
}
