// Package redis provides a VectorIndex backed by RediSearch HNSW indexes.
//
// Each record is a hash under "<index>:<namespace>:<id>" holding the chunk
// content, a namespace TAG, the JSON-encoded metadata and the FLOAT32 vector.
package redis

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

const (
	defaultEFConstruction = 200
	defaultM              = 16
	defaultPoolSize       = 10

	fieldContent   = "content"
	fieldNamespace = "namespace"
	fieldMetadata  = "metadata"
	fieldVector    = "vector"
	fieldScore     = "score"
)

// Config holds Redis connection and index configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int

	// IndexName is the RediSearch index that Upsert, Query and Stats use.
	IndexName string

	// Dimensions is reported by Stats and checked on Upsert.
	Dimensions int
}

// Index implements driven.VectorIndex on a Redis server with RediSearch.
type Index struct {
	client *redis.Client
	name   string

	mu   sync.RWMutex // guards dims
	dims int
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config) (*Index, error) {
	if cfg.IndexName == "" {
		return nil, fmt.Errorf("redis: index name is required")
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = defaultPoolSize
	}

	// RESP2 keeps FT.* replies as flat arrays.
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
		Protocol: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to connect to %s: %w", cfg.Addr, err)
	}

	return &Index{client: client, name: cfg.IndexName, dims: cfg.Dimensions}, nil
}

// Exists reports whether the RediSearch index has been created.
func (x *Index) Exists(ctx context.Context, name string) (bool, error) {
	res, err := x.client.Do(ctx, "FT._LIST").Result()
	if err != nil {
		return false, fmt.Errorf("redis: list indexes: %w", err)
	}
	for _, v := range asSlice(res) {
		if asString(v) == name {
			return true, nil
		}
	}
	return false, nil
}

// Create creates an HNSW index with the cosine metric.
func (x *Index) Create(ctx context.Context, spec domain.IndexSpec) error {
	if spec.Dimensions <= 0 {
		return fmt.Errorf("redis: invalid dimensions %d", spec.Dimensions)
	}
	args := createArgs(spec)
	if _, err := x.client.Do(ctx, args...).Result(); err != nil {
		return fmt.Errorf("redis: create index %s: %w", spec.Name, err)
	}
	if spec.Name == x.name {
		x.setDimensions(spec.Dimensions)
	}
	logger.Debug("redis: created index %s (dim=%d)", spec.Name, spec.Dimensions)
	return nil
}

// Describe reports the index ready once background indexing has finished.
func (x *Index) Describe(ctx context.Context, name string) (domain.IndexStatus, error) {
	info, err := x.info(ctx, name)
	if err != nil {
		return domain.IndexStatus{}, err
	}
	return domain.IndexStatus{Ready: asInt(info["indexing"]) == 0}, nil
}

// Upsert writes records in one pipeline. Existing keys are never deleted.
func (x *Index) Upsert(ctx context.Context, namespace string, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	if err := x.checkDimensions(records); err != nil {
		return err
	}

	pipe := x.client.Pipeline()
	for _, r := range records {
		meta, err := json.Marshal(domain.MetadataStrings(r.Document.Metadata))
		if err != nil {
			return fmt.Errorf("redis: encode metadata: %w", err)
		}
		pipe.HSet(ctx, x.key(namespace, r.ID),
			fieldContent, r.Document.Content,
			fieldNamespace, namespace,
			fieldMetadata, string(meta),
			fieldVector, encodeVector(r.Values),
		)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: upsert %d records: %w", len(records), err)
	}
	return nil
}

// Query runs a KNN search restricted to namespace.
func (x *Index) Query(ctx context.Context, namespace string, vector []float32, k int) ([]domain.Match, error) {
	if k <= 0 {
		return nil, nil
	}

	q := fmt.Sprintf("@%s:{%s}=>[KNN %d @%s $vec AS %s]", fieldNamespace, escapeTag(namespace), k, fieldVector, fieldScore)
	res, err := x.client.Do(ctx, "FT.SEARCH", x.name, q,
		"PARAMS", "2", "vec", encodeVector(vector),
		"RETURN", "3", fieldContent, fieldMetadata, fieldScore,
		"SORTBY", fieldScore,
		"LIMIT", "0", strconv.Itoa(k),
		"DIALECT", "2",
	).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: search: %w", err)
	}

	matches, err := parseSearch(res)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	logger.Debug("redis: %d matches in %s", len(matches), namespace)
	return matches, nil
}

// Stats returns the document count overall and per namespace.
func (x *Index) Stats(ctx context.Context) (domain.IndexStats, error) {
	info, err := x.info(ctx, x.name)
	if err != nil {
		return domain.IndexStats{}, err
	}

	res, err := x.client.Do(ctx, "FT.AGGREGATE", x.name, "*",
		"GROUPBY", "1", "@"+fieldNamespace,
		"REDUCE", "COUNT", "0", "AS", "count",
	).Result()
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("redis: aggregate namespaces: %w", err)
	}

	return domain.IndexStats{
		TotalVectors: int64(asInt(info["num_docs"])),
		Namespaces:   parseAggregate(res),
		Dimensions:   x.dimensions(),
		Metric:       domain.MetricCosine,
	}, nil
}

func (x *Index) dimensions() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dims
}

func (x *Index) setDimensions(n int) {
	x.mu.Lock()
	x.dims = n
	x.mu.Unlock()
}

// checkDimensions rejects records whose vector length differs from the
// index. An index with unknown dimensions accepts anything.
func (x *Index) checkDimensions(records []domain.VectorRecord) error {
	dims := x.dimensions()
	if dims <= 0 {
		return nil
	}
	for _, r := range records {
		if len(r.Values) != dims {
			return fmt.Errorf("redis: record %s has %d dimensions, index has %d", r.ID, len(r.Values), dims)
		}
	}
	return nil
}

// Close closes the Redis connection.
func (x *Index) Close() error {
	return x.client.Close()
}

func (x *Index) info(ctx context.Context, name string) (map[string]any, error) {
	res, err := x.client.Do(ctx, "FT.INFO", name).Result()
	if err != nil {
		if isUnknownIndex(err) {
			return nil, fmt.Errorf("redis: index %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("redis: index info %s: %w", name, err)
	}
	return pairs(asSlice(res)), nil
}

func (x *Index) key(namespace, id string) string {
	return x.name + ":" + namespace + ":" + id
}

func createArgs(spec domain.IndexSpec) []any {
	return []any{
		"FT.CREATE", spec.Name,
		"ON", "HASH",
		"PREFIX", "1", spec.Name + ":",
		"SCHEMA",
		fieldContent, "TEXT",
		fieldNamespace, "TAG",
		fieldVector, "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(spec.Dimensions),
		"DISTANCE_METRIC", "COSINE",
		"EF_CONSTRUCTION", strconv.Itoa(defaultEFConstruction),
		"M", strconv.Itoa(defaultM),
	}
}

func isUnknownIndex(err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown index") || strings.Contains(msg, "no such index")
}

// encodeVector packs v as little-endian FLOAT32, the layout RediSearch expects.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// escapeTag backslash-escapes TAG query punctuation.
func escapeTag(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseSearch reads an FT.SEARCH reply: total, then (key, fields) pairs.
func parseSearch(res any) ([]domain.Match, error) {
	values := asSlice(res)
	if values == nil {
		return nil, fmt.Errorf("unexpected search reply %T", res)
	}

	matches := make([]domain.Match, 0, len(values)/2)
	for i := 1; i+1 < len(values); i += 2 {
		fields := pairs(asSlice(values[i+1]))

		doc := domain.Document{Content: asString(fields[fieldContent]), Metadata: map[string]any{}}
		if raw := asString(fields[fieldMetadata]); raw != "" {
			var meta map[string]string
			if err := json.Unmarshal([]byte(raw), &meta); err != nil {
				return nil, fmt.Errorf("decode metadata of %s: %w", asString(values[i]), err)
			}
			doc.Metadata = domain.MetadataFromStrings(meta)
		}

		dist, _ := strconv.ParseFloat(asString(fields[fieldScore]), 64)
		matches = append(matches, domain.Match{Document: doc, Score: 1 - dist})
	}
	return matches, nil
}

// parseAggregate reads a GROUPBY reply into namespace counts.
func parseAggregate(res any) map[string]int64 {
	out := map[string]int64{}
	values := asSlice(res)
	for i := 1; i < len(values); i++ {
		row := pairs(asSlice(values[i]))
		ns := asString(row[fieldNamespace])
		if ns == "" {
			continue
		}
		out[ns] = int64(asInt(row["count"]))
	}
	return out
}

func pairs(values []any) map[string]any {
	out := make(map[string]any, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		out[asString(values[i])] = values[i+1]
	}
	return out
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(n, 64)
		return int(f)
	default:
		return 0
	}
}
