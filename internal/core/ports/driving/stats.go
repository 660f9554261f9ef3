package driving

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// StatsService reports index and chunking statistics.
type StatsService interface {
	ChunkingStats(ctx context.Context) (*domain.ChunkingStats, error)
}

// PolicyService reports the state of the behavioural policy.
type PolicyService interface {
	VerifyPolicy(ctx context.Context) (*domain.PolicyStatus, error)
}
