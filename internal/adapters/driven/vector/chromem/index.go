// Package chromem provides an embedded VectorIndex backed by chromem-go.
//
// The index itself is an empty marker collection; each namespace is a
// collection named "<index>::<namespace>".
package chromem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

const nsSeparator = "::"

// errNoEmbedder is returned if chromem is ever asked to embed on its own.
// Vectors are always supplied by the embedding service.
var errNoEmbedder = errors.New("chromem: embeddings must be supplied by the caller")

// Config holds chromem configuration.
type Config struct {
	// Path is the persistence directory. Empty keeps everything in memory.
	Path string

	// Compress gzips persisted collections.
	Compress bool

	// IndexName is the index that Upsert, Query and Stats use.
	IndexName string

	// Dimensions is reported by Stats and checked on Upsert.
	Dimensions int
}

// Index implements driven.VectorIndex on an embedded chromem database.
type Index struct {
	db   *chromem.DB
	name string

	mu   sync.Mutex // guards dims and collection creation
	dims int
}

// New opens the database.
func New(cfg Config) (*Index, error) {
	if cfg.IndexName == "" {
		return nil, fmt.Errorf("chromem: index name is required")
	}

	db := chromem.NewDB()
	if cfg.Path != "" {
		var err error
		db, err = chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("chromem: open %s: %w", cfg.Path, err)
		}
	}

	return &Index{db: db, name: cfg.IndexName, dims: cfg.Dimensions}, nil
}

func noEmbed(context.Context, string) ([]float32, error) {
	return nil, errNoEmbedder
}

// Exists reports whether the marker collection is present.
func (x *Index) Exists(_ context.Context, name string) (bool, error) {
	return x.db.GetCollection(name, noEmbed) != nil, nil
}

// Create creates the marker collection.
func (x *Index) Create(_ context.Context, spec domain.IndexSpec) error {
	if spec.Dimensions <= 0 {
		return fmt.Errorf("chromem: invalid dimensions %d", spec.Dimensions)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.db.GetCollection(spec.Name, noEmbed) != nil {
		return fmt.Errorf("chromem: index %s already exists", spec.Name)
	}
	meta := map[string]string{"hnsw:space": string(spec.Metric), "dimensions": fmt.Sprint(spec.Dimensions)}
	if _, err := x.db.CreateCollection(spec.Name, meta, noEmbed); err != nil {
		return fmt.Errorf("chromem: create index %s: %w", spec.Name, err)
	}
	if spec.Name == x.name {
		x.dims = spec.Dimensions
	}
	logger.Debug("chromem: created index %s (dim=%d)", spec.Name, spec.Dimensions)
	return nil
}

// Describe reports ready as soon as the index exists; chromem has no
// background build.
func (x *Index) Describe(ctx context.Context, name string) (domain.IndexStatus, error) {
	ok, _ := x.Exists(ctx, name)
	if !ok {
		return domain.IndexStatus{}, fmt.Errorf("chromem: index %s: %w", name, domain.ErrNotFound)
	}
	return domain.IndexStatus{Ready: true}, nil
}

// Upsert adds records to the namespace collection, creating it on first use.
func (x *Index) Upsert(ctx context.Context, namespace string, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	x.mu.Lock()
	dims := x.dims
	col, err := x.db.GetOrCreateCollection(x.collectionName(namespace), nil, noEmbed)
	x.mu.Unlock()
	if err != nil {
		return fmt.Errorf("chromem: namespace %s: %w", namespace, err)
	}

	ids := make([]string, len(records))
	vectors := make([][]float32, len(records))
	metas := make([]map[string]string, len(records))
	contents := make([]string, len(records))
	for i, r := range records {
		if dims > 0 && len(r.Values) != dims {
			return fmt.Errorf("chromem: record %s has %d dimensions, index has %d", r.ID, len(r.Values), dims)
		}
		ids[i] = r.ID
		vectors[i] = r.Values
		metas[i] = domain.MetadataStrings(r.Document.Metadata)
		contents[i] = r.Document.Content
	}

	if err := col.Add(ctx, ids, vectors, metas, contents); err != nil {
		return fmt.Errorf("chromem: upsert %d records: %w", len(records), err)
	}
	return nil
}

// Query returns up to k nearest documents in namespace.
// An unknown or empty namespace yields no matches.
func (x *Index) Query(ctx context.Context, namespace string, vector []float32, k int) ([]domain.Match, error) {
	col := x.db.GetCollection(x.collectionName(namespace), noEmbed)
	if col == nil || k <= 0 {
		return nil, nil
	}

	n := min(k, col.Count())
	if n == 0 {
		return nil, nil
	}

	res, err := col.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem: query %s: %w", namespace, err)
	}

	matches := make([]domain.Match, len(res))
	for i, r := range res {
		matches[i] = domain.Match{
			Document: domain.Document{Content: r.Content, Metadata: domain.MetadataFromStrings(r.Metadata)},
			Score:    float64(r.Similarity),
		}
	}
	logger.Debug("chromem: %d matches in %s", len(matches), namespace)
	return matches, nil
}

// Stats counts documents per namespace collection of this index.
func (x *Index) Stats(ctx context.Context) (domain.IndexStats, error) {
	if ok, _ := x.Exists(ctx, x.name); !ok {
		return domain.IndexStats{}, fmt.Errorf("chromem: index %s: %w", x.name, domain.ErrNotFound)
	}

	x.mu.Lock()
	dims := x.dims
	x.mu.Unlock()

	stats := domain.IndexStats{
		Namespaces: map[string]int64{},
		Dimensions: dims,
		Metric:     domain.MetricCosine,
	}
	prefix := x.name + nsSeparator
	for name, col := range x.db.ListCollections() {
		ns, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		n := int64(col.Count())
		stats.Namespaces[ns] = n
		stats.TotalVectors += n
	}
	return stats, nil
}

// Close is a no-op; persistent collections are written on every Add.
func (x *Index) Close() error {
	return nil
}

func (x *Index) collectionName(namespace string) string {
	return x.name + nsSeparator + namespace
}
