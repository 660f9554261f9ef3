package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// Classifier picks the chunking strategy for a filename.
type Classifier func(filename string) domain.StrategyTag

// IngestionOptions configures the ingestion pipeline.
type IngestionOptions struct {
	// Namespace is the index partition all chunks are written to.
	Namespace string

	// BatchSize is the number of chunks embedded and upserted per call.
	BatchSize int

	// TextFallback splits single-document .txt loads. Nil leaves them whole.
	TextFallback driven.Chunker

	// NewID generates vector record IDs. Defaults to random UUIDs.
	NewID func() string
}

// IngestionService orchestrates Loader -> Classifier -> Chunker -> embedding
// -> index upsert. Upserts are additive: ingesting the same file twice
// stores every chunk twice.
type IngestionService struct {
	loaders     driven.LoaderRegistry
	chunkers    driven.ChunkerRegistry
	classify    Classifier
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	provisioner *IndexProvisioner
	opts        IngestionOptions
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(
	loaders driven.LoaderRegistry,
	chunkers driven.ChunkerRegistry,
	classify Classifier,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	provisioner *IndexProvisioner,
	opts IngestionOptions,
) *IngestionService {
	if opts.Namespace == "" {
		opts.Namespace = domain.DefaultNamespace
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = domain.DefaultBatchSize
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &IngestionService{
		loaders:     loaders,
		chunkers:    chunkers,
		classify:    classify,
		embedder:    embedder,
		index:       index,
		provisioner: provisioner,
		opts:        opts,
	}
}

// Ingest runs the pipeline for the file at path, recording its base name
// as the source filename.
func (s *IngestionService) Ingest(ctx context.Context, path, ext string) (*domain.IngestResult, error) {
	return s.IngestAs(ctx, path, ext, filepath.Base(path))
}

// IngestAs runs the pipeline for the file at path under the given source
// filename. Any failure aborts the call with a *domain.StageError; batches
// upserted before the failure stay in the index.
func (s *IngestionService) IngestAs(ctx context.Context, path, ext, filename string) (*domain.IngestResult, error) {
	logger.Section("Ingestion")
	logger.Debug("File: %s (ext=%s, source=%s)", path, ext, filename)

	ft, err := domain.FileTypeFromExtension(ext)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageLoad, Err: err}
	}

	docs, err := s.loaders.Load(ctx, path, string(ft))
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageLoad, Err: err}
	}
	logger.Debug("Loaded %d document(s)", len(docs))

	chunks, strategy := s.chunk(ft, docs, filename)
	chunks = tagAndFilter(chunks, filename)
	logger.Info("Strategy %s produced %d chunk(s) from %s", strategy, len(chunks), filename)

	switch {
	case s.embedder == nil:
		return nil, &domain.StageError{Stage: domain.StageEmbed, Err: domain.ErrEmbeddingUnavailable}
	case s.index == nil || s.provisioner == nil:
		return nil, &domain.StageError{Stage: domain.StageProvision, Err: domain.ErrVectorIndexUnavailable}
	}

	if err := s.provisioner.EnsureIndex(ctx); err != nil {
		return nil, &domain.StageError{Stage: domain.StageProvision, Err: err}
	}

	if err := s.embedAndUpsert(ctx, chunks); err != nil {
		return nil, err
	}

	return &domain.IngestResult{
		Status:           domain.IngestStatusOK,
		Filename:         filename,
		TotalChunks:      len(chunks),
		ChunkingStrategy: strategy,
	}, nil
}

// chunk routes PDFs through the classifier, splits single-document text
// loads into windows and passes everything else through.
func (s *IngestionService) chunk(
	ft domain.FileType, docs []domain.Document, filename string,
) ([]domain.Document, domain.StrategyTag) {
	switch ft {
	case domain.FileTypePDF:
		tag := s.classify(filename)
		chunker := s.chunkers.Get(tag)
		if chunker == nil {
			logger.Warn("No chunker registered for %s, indexing pages whole", tag)
			return docs, domain.StrategyPassThrough
		}
		return chunker.Chunk(docs, filename), tag
	case domain.FileTypeTXT:
		if len(docs) == 1 && s.opts.TextFallback != nil {
			return s.opts.TextFallback.Chunk(docs, filename), domain.StrategyGeneral
		}
		return docs, domain.StrategyPassThrough
	default:
		return docs, domain.StrategyPassThrough
	}
}

// tagAndFilter stamps source on documents no chunker has tagged and drops
// blank content.
func tagAndFilter(docs []domain.Document, filename string) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.IsBlank() {
			continue
		}
		if d.Source() == "" {
			d = d.WithMetadata(domain.MetaSource, filename)
		}
		out = append(out, d)
	}
	return out
}

func (s *IngestionService) embedAndUpsert(ctx context.Context, chunks []domain.Document) error {
	for start := 0; start < len(chunks); start += s.opts.BatchSize {
		end := min(start+s.opts.BatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Content
		}

		logger.Debug("Embedding batch %d-%d of %d", start, end, len(chunks))
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return &domain.StageError{Stage: domain.StageEmbed, Err: fmt.Errorf("%w: %w", domain.ErrEmbedding, err)}
		}
		if len(vectors) != len(batch) {
			return &domain.StageError{
				Stage: domain.StageEmbed,
				Err:   fmt.Errorf("%w: got %d vectors for %d chunks", domain.ErrEmbedding, len(vectors), len(batch)),
			}
		}

		records := make([]domain.VectorRecord, len(batch))
		for i, d := range batch {
			records[i] = domain.VectorRecord{ID: s.opts.NewID(), Values: vectors[i], Document: d}
		}
		if err := s.index.Upsert(ctx, s.opts.Namespace, records); err != nil {
			return &domain.StageError{Stage: domain.StageUpsert, Err: err}
		}
	}
	return nil
}
