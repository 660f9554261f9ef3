package domain

// Metric is the similarity metric of a vector index.
type Metric string

// Supported metrics.
const (
	MetricCosine Metric = "cosine"
)

// IndexSpec describes the vector index the pipeline writes to.
type IndexSpec struct {
	// Name is the index name.
	Name string

	// Dimensions must match the embedding model's output width.
	Dimensions int

	// Metric is the similarity metric. Always cosine for OceanBot.
	Metric Metric
}

// IndexStatus reports the provisioning state of an index.
type IndexStatus struct {
	Ready bool
}

// VectorRecord is one (vector, document) pair upserted into a namespace.
type VectorRecord struct {
	// ID is unique per upsert. Re-ingesting a file yields new IDs.
	ID string

	// Values is the embedding of Document.Content.
	Values []float32

	// Document carries the content and metadata stored alongside the vector.
	Document Document
}

// Match is a ranked similarity-search result.
type Match struct {
	Document Document

	// Score is the cosine similarity; higher is closer.
	Score float64
}

// IndexStats is the index-level summary reported by /chunking-stats.
type IndexStats struct {
	TotalVectors int64
	Namespaces   map[string]int64
	Dimensions   int
	Metric       Metric
}
