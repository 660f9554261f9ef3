package domain

// IngestStatusOK is the status reported for a completed ingestion.
const IngestStatusOK = "OK"

// StrategyPassThrough is reported for formats indexed as loaded (.csv and
// .docx). It is never returned by the classifier.
const StrategyPassThrough StrategyTag = "passthrough"

// IngestResult summarises one ingestion call.
type IngestResult struct {
	Status           string
	Filename         string
	TotalChunks      int
	ChunkingStrategy StrategyTag
}

// ChunkingStats is the payload of the chunking statistics endpoint.
type ChunkingStats struct {
	Index          IndexStats
	Strategies     map[StrategyTag]string
	SupportedTypes map[FileType]string
}

// PolicyStatus reports the state of the behavioural policy.
type PolicyStatus struct {
	SystemPromptActive    bool
	RealityFilterEnforced bool
	PDFFirstMode          bool
	ReferenceDocuments    []string
	Directive             string
}
