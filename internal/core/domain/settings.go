package domain

import "time"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderEino is an OpenAI-compatible endpoint driven through the eino SDK.
	AIProviderEino AIProvider = "eino"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderEino:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderEino
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderEino:
		return "OpenAI-compatible (eino)"
	default:
		return unknownDescription
	}
}

// IndexBackend selects the vector index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendRedis uses RediSearch HNSW indexes on a Redis server.
	IndexBackendRedis IndexBackend = "redis"

	// IndexBackendChromem uses an embedded chromem-go database.
	IndexBackendChromem IndexBackend = "chromem"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	return b == IndexBackendRedis || b == IndexBackendChromem
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// AllowedOrigins lists CORS origins. "*" allows any origin.
	AllowedOrigins []string

	// MaxUploadBytes caps the size of an uploaded file.
	MaxUploadBytes int64
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible hosts).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// RequestsPerSecond paces calls to the provider. Zero disables pacing.
	RequestsPerSecond float64

	// BatchSize is the number of chunks embedded per call.
	BatchSize int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible hosts).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Temperature controls sampling. Zero uses the provider default.
	Temperature float64

	// MaxTokens caps the answer length. Zero uses the provider default.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IndexSettings holds vector index configuration.
type IndexSettings struct {
	// Backend selects the index implementation.
	Backend IndexBackend

	// Name is the index name.
	Name string

	// Namespace is the partition all chunks of this deployment share.
	Namespace string

	// Dimensions is the embedding vector width.
	Dimensions int

	// RedisAddr, RedisPassword and RedisDB locate the Redis server.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Path is the chromem persistence directory. Empty keeps the index in memory.
	Path string

	// ReadyTimeout bounds the wait for a newly created index to become ready.
	ReadyTimeout time.Duration

	// PollInterval is the delay between readiness checks.
	PollInterval time.Duration
}

// BlobSettings holds blob storage configuration.
type BlobSettings struct {
	// BaseURL is the storage root, e.g. file:///var/lib/oceanbot/uploads,
	// s3://bucket/uploads or mem://localhost/uploads.
	BaseURL string
}

// RetrievalSettings holds retriever configuration.
type RetrievalSettings struct {
	// TopK is the number of passages passed to the model.
	TopK int
}

// Settings holds all application settings.
// It is resolved once at process start and passed to services by reference.
type Settings struct {
	Server    ServerSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Index     IndexSettings
	Blob      BlobSettings
	Retrieval RetrievalSettings
}

// Defaults shared by settings and services.
const (
	DefaultServerAddr     = ":8000"
	DefaultMaxUploadBytes = 32 << 20
	DefaultIndexName      = "oceanbot"
	DefaultNamespace      = "ocean48"
	DefaultDimensions     = 1536
	DefaultTopK           = 4
	DefaultBatchSize      = 64
	DefaultReadyTimeout   = 60 * time.Second
	DefaultPollInterval   = time.Second
)

// DefaultSettings returns settings with sensible defaults.
// API keys are left empty; they come from the environment.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:           DefaultServerAddr,
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Embedding: EmbeddingSettings{
			Provider:          AIProviderOpenAI,
			Model:             DefaultEmbeddingModels()[AIProviderOpenAI],
			RequestsPerSecond: 5,
			BatchSize:         DefaultBatchSize,
		},
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
			Model:    DefaultLLMModels()[AIProviderOpenAI],
		},
		Index: IndexSettings{
			Backend:      IndexBackendChromem,
			Name:         DefaultIndexName,
			Namespace:    DefaultNamespace,
			Dimensions:   DefaultDimensions,
			RedisAddr:    "localhost:6379",
			ReadyTimeout: DefaultReadyTimeout,
			PollInterval: DefaultPollInterval,
		},
		Blob: BlobSettings{
			BaseURL: "file:///tmp/oceanbot/uploads",
		},
		Retrieval: RetrievalSettings{
			TopK: DefaultTopK,
		},
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderEino:   "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderEino:      "gpt-4o-mini",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// SettingSource records where a resolved setting came from.
type SettingSource string

// Setting sources in increasing precedence.
const (
	SourceDefault SettingSource = "default"
	SourceConfig  SettingSource = "config"
	SourceEnv     SettingSource = "env"
)

// SettingValue is one resolved setting, as shown by `config show`.
type SettingValue struct {
	Key    string
	Value  string
	Secret bool
	Source SettingSource

	// EnvVar is the variable that supplied the value when Source is SourceEnv.
	EnvVar string
}

// Display returns the value with secrets masked, keeping the last four
// characters of long values.
func (v SettingValue) Display() string {
	if !v.Secret || v.Value == "" {
		return v.Value
	}
	if len(v.Value) <= 8 {
		return "****"
	}
	return "****" + v.Value[len(v.Value)-4:]
}
