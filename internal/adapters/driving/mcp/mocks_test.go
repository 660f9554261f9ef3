package mcp

import (
	"context"
	"io"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
)

// mockStream yields fragments then err (io.EOF when nil).
type mockStream struct {
	fragments []string
	err       error
	closed    bool
}

func (m *mockStream) Recv() (string, error) {
	if len(m.fragments) == 0 {
		if m.err != nil {
			return "", m.err
		}
		return "", io.EOF
	}
	f := m.fragments[0]
	m.fragments = m.fragments[1:]
	return f, nil
}

func (m *mockStream) Close() error {
	m.closed = true
	return nil
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	stream       *mockStream
	err          error
	prefix       string
	conversation domain.Conversation
}

func (m *mockChatService) Answer(
	_ context.Context, prefix string, conv domain.Conversation,
) (driving.AnswerStream, error) {
	m.prefix = prefix
	m.conversation = conv
	if m.err != nil {
		return nil, m.err
	}
	return m.stream, nil
}

// mockIngestionService is a mock implementation of driving.IngestionService.
type mockIngestionService struct {
	path string
	ext  string
	err  error
}

func (m *mockIngestionService) Ingest(ctx context.Context, path, ext string) (*domain.IngestResult, error) {
	return m.IngestAs(ctx, path, ext, path)
}

func (m *mockIngestionService) IngestAs(_ context.Context, path, ext, filename string) (*domain.IngestResult, error) {
	m.path, m.ext = path, ext
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestResult{
		Status:           domain.IngestStatusOK,
		Filename:         filename,
		TotalChunks:      3,
		ChunkingStrategy: domain.StrategySpiritsList,
	}, nil
}

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	key string
	err error
}

func (m *mockUploadService) Upload(_ context.Context, _, _ string, _ []byte) (*domain.IngestResult, error) {
	return nil, m.err
}

func (m *mockUploadService) IngestBlob(_ context.Context, key string) (*domain.IngestResult, error) {
	m.key = key
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestResult{
		Status:           domain.IngestStatusOK,
		Filename:         "Allergens.pdf",
		TotalChunks:      7,
		ChunkingStrategy: domain.StrategyAllergenInfo,
	}, nil
}

// mockStatsService is a mock implementation of driving.StatsService.
type mockStatsService struct {
	stats *domain.ChunkingStats
	err   error
}

func (m *mockStatsService) ChunkingStats(_ context.Context) (*domain.ChunkingStats, error) {
	return m.stats, m.err
}

// mockPolicyService is a mock implementation of driving.PolicyService.
type mockPolicyService struct {
	status *domain.PolicyStatus
	err    error
}

func (m *mockPolicyService) VerifyPolicy(_ context.Context) (*domain.PolicyStatus, error) {
	return m.status, m.err
}
