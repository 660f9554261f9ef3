package services

import (
	"context"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService reports what the index holds and how files are chunked.
type StatsService struct {
	index   driven.VectorIndex
	loaders driven.LoaderRegistry
}

// NewStatsService creates a new stats service. loaders may be nil, in which
// case every known file type is reported.
func NewStatsService(index driven.VectorIndex, loaders driven.LoaderRegistry) *StatsService {
	return &StatsService{index: index, loaders: loaders}
}

// ChunkingStats returns index statistics with the strategy and file type
// descriptions.
func (s *StatsService) ChunkingStats(ctx context.Context) (*domain.ChunkingStats, error) {
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	idx, err := s.index.Stats(ctx)
	if err != nil {
		return nil, err
	}

	strategies := make(map[domain.StrategyTag]string)
	for _, tag := range domain.AllStrategies() {
		strategies[tag] = tag.Description()
	}

	types := domain.AllFileTypes()
	if s.loaders != nil {
		types = s.loaders.SupportedTypes()
	}
	supported := make(map[domain.FileType]string, len(types))
	for _, ft := range types {
		supported[ft] = ft.Description()
	}

	return &domain.ChunkingStats{
		Index:          idx,
		Strategies:     strategies,
		SupportedTypes: supported,
	}, nil
}
