package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// EnvLookup reads one environment variable. os.LookupEnv satisfies it.
type EnvLookup func(key string) (string, bool)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindDuration
	kindList
)

// setting describes one config key: how it is parsed, where it lands in
// domain.Settings and which environment variables override it.
type setting struct {
	key    string
	kind   settingKind
	secret bool
	env    []string
	apply  func(s *domain.Settings, raw string) error
	read   func(s *domain.Settings) string
}

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr      = "server.addr"
	keyServerOrigins   = "server.allowed_origins"
	keyServerMaxUpload = "server.max_upload_bytes"
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedRPS        = "embedding.requests_per_second"
	keyEmbedBatchSize  = "embedding.batch_size"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
	keyLLMAPIKey       = "llm.api_key"
	keyLLMTemperature  = "llm.temperature"
	keyLLMMaxTokens    = "llm.max_tokens"
	keyIndexBackend    = "index.backend"
	keyIndexName       = "index.name"
	keyIndexNamespace  = "index.namespace"
	keyIndexDimensions = "index.dimensions"
	keyIndexRedisAddr  = "index.redis_addr"
	keyIndexRedisPass  = "index.redis_password"
	keyIndexRedisDB    = "index.redis_db"
	keyIndexPath       = "index.path"
	keyIndexReady      = "index.ready_timeout"
	keyIndexPoll       = "index.poll_interval"
	keyBlobBaseURL     = "blob.base_url"
	keyRetrievalTopK   = "retrieval.top_k"
)

// providerKeyEnv names the conventional API key variable per provider,
// consulted when no oceanbot-specific key is set.
var providerKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderOpenAI:    "OPENAI_API_KEY",
	domain.AIProviderEino:      "OPENAI_API_KEY",
	domain.AIProviderAnthropic: "ANTHROPIC_API_KEY",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   EnvLookup
	table       []setting
}

// NewSettingsService creates a new settings service. A nil lookupEnv
// ignores the environment.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv EnvLookup) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = func(string) (string, bool) { return "", false }
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
		table:       settingsTable(),
	}
}

// EnvName returns the OCEANBOT_ variable for a config key.
func EnvName(key string) string {
	return "OCEANBOT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Get resolves the current settings. A value that fails to parse is an
// ErrValidation naming the key and where it came from.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings, _, err := s.resolve()
	return settings, err
}

// Describe lists every known setting with its resolved value and source.
func (s *SettingsService) Describe() ([]domain.SettingValue, error) {
	_, values, err := s.resolve()
	return values, err
}

// Keys returns the names of all known settings, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(s.table))
	for _, st := range s.table {
		keys = append(keys, st.key)
	}
	sort.Strings(keys)
	return keys
}

// Set validates value for key and persists it to the config file with its
// natural TOML type.
func (s *SettingsService) Set(key, value string) error {
	st, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	scratch := domain.DefaultSettings()
	if err := st.apply(&scratch, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	var stored any
	switch st.kind {
	case kindInt:
		stored, _ = strconv.Atoi(strings.TrimSpace(value))
	case kindFloat:
		stored, _ = strconv.ParseFloat(strings.TrimSpace(value), 64)
	case kindList:
		stored = splitList(value)
	default:
		stored = value
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) lookup(key string) (setting, bool) {
	for _, st := range s.table {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

func (s *SettingsService) resolve() (*domain.Settings, []domain.SettingValue, error) {
	settings := domain.DefaultSettings()
	values := make([]domain.SettingValue, 0, len(s.table))
	sources := make(map[string]domain.SettingSource, len(s.table))

	for _, st := range s.table {
		source := domain.SourceDefault
		envVar := ""

		if raw, ok := s.fromConfig(st); ok {
			if err := st.apply(&settings, raw); err != nil {
				return nil, nil, fmt.Errorf("%s in %s: %w", st.key, s.configStore.Path(), err)
			}
			source = domain.SourceConfig
		}

		for _, name := range st.env {
			raw, ok := s.lookupEnv(name)
			if !ok || raw == "" {
				continue
			}
			if err := st.apply(&settings, raw); err != nil {
				return nil, nil, fmt.Errorf("%s from $%s: %w", st.key, name, err)
			}
			source = domain.SourceEnv
			envVar = name
			break
		}

		sources[st.key] = source
		values = append(values, domain.SettingValue{
			Key:    st.key,
			Secret: st.secret,
			Source: source,
			EnvVar: envVar,
		})
	}

	s.applyFallbacks(&settings, sources, values)

	for i := range values {
		st, _ := s.lookup(values[i].Key)
		values[i].Value = st.read(&settings)
	}

	return &settings, values, nil
}

// applyFallbacks fills gaps that depend on other resolved values.
func (s *SettingsService) applyFallbacks(
	settings *domain.Settings,
	sources map[string]domain.SettingSource,
	values []domain.SettingValue,
) {
	mark := func(key, envVar string) {
		for i := range values {
			if values[i].Key == key {
				values[i].Source = domain.SourceEnv
				values[i].EnvVar = envVar
			}
		}
	}

	if settings.Embedding.APIKey == "" {
		if name, ok := providerKeyEnv[settings.Embedding.Provider]; ok {
			if v, ok := s.lookupEnv(name); ok && v != "" {
				settings.Embedding.APIKey = v
				mark(keyEmbedAPIKey, name)
			}
		}
	}
	if settings.LLM.APIKey == "" {
		if name, ok := providerKeyEnv[settings.LLM.Provider]; ok {
			if v, ok := s.lookupEnv(name); ok && v != "" {
				settings.LLM.APIKey = v
				mark(keyLLMAPIKey, name)
			}
		}
	}

	if host, ok := s.lookupEnv("OLLAMA_HOST"); ok && host != "" {
		if settings.Embedding.Provider == domain.AIProviderOllama && settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = ollamaURL(host)
			mark(keyEmbedBaseURL, "OLLAMA_HOST")
		}
		if settings.LLM.Provider == domain.AIProviderOllama && settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = ollamaURL(host)
			mark(keyLLMBaseURL, "OLLAMA_HOST")
		}
	}

	// A provider switch without an explicit model takes the provider's
	// default, and the index width follows known models unless set.
	if sources[keyEmbedProvider] != domain.SourceDefault && sources[keyEmbedModel] == domain.SourceDefault {
		if m, ok := domain.DefaultEmbeddingModels()[settings.Embedding.Provider]; ok {
			settings.Embedding.Model = m
		}
	}
	if sources[keyIndexDimensions] == domain.SourceDefault {
		if d, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
			settings.Index.Dimensions = d
		}
	}
	if sources[keyLLMProvider] != domain.SourceDefault && sources[keyLLMModel] == domain.SourceDefault {
		if m, ok := domain.DefaultLLMModels()[settings.LLM.Provider]; ok {
			settings.LLM.Model = m
		}
	}
}

// fromConfig returns the stored value for st as a string.
func (s *SettingsService) fromConfig(st setting) (string, bool) {
	val, ok := s.configStore.Get(st.key)
	if !ok || val == nil {
		return "", false
	}
	if st.kind == kindList {
		return strings.Join(s.configStore.GetStringSlice(st.key), ","), true
	}
	return fmt.Sprint(val), true
}

// ollamaURL accepts OLLAMA_HOST in either host:port or URL form.
func ollamaURL(host string) string {
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "http://" + host
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrValidation)
}

func parseInt(raw string, minimum int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid("%q is not an integer", raw)
	}
	if n < minimum {
		return 0, invalid("%d is below the minimum of %d", n, minimum)
	}
	return n, nil
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f < 0 {
		return 0, invalid("%q is not a non-negative number", raw)
	}
	return f, nil
}

func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return 0, invalid("%q is not a positive duration", raw)
	}
	return d, nil
}

func parseProvider(raw string) (domain.AIProvider, error) {
	p := domain.AIProvider(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", invalid("unknown provider %q", raw)
	}
	return p, nil
}

func stringSetting(key string, secret bool, target func(*domain.Settings) *string, env ...string) setting {
	return setting{
		key:    key,
		kind:   kindString,
		secret: secret,
		env:    append([]string{EnvName(key)}, env...),
		apply: func(s *domain.Settings, raw string) error {
			*target(s) = strings.TrimSpace(raw)
			return nil
		},
		read: func(s *domain.Settings) string { return *target(s) },
	}
}

func intSetting(key string, minimum int, target func(*domain.Settings) *int, env ...string) setting {
	return setting{
		key:  key,
		kind: kindInt,
		env:  append([]string{EnvName(key)}, env...),
		apply: func(s *domain.Settings, raw string) error {
			n, err := parseInt(raw, minimum)
			if err != nil {
				return err
			}
			*target(s) = n
			return nil
		},
		read: func(s *domain.Settings) string { return strconv.Itoa(*target(s)) },
	}
}

func durationSetting(key string, target func(*domain.Settings) *time.Duration) setting {
	return setting{
		key:  key,
		kind: kindDuration,
		env:  []string{EnvName(key)},
		apply: func(s *domain.Settings, raw string) error {
			d, err := parseDuration(raw)
			if err != nil {
				return err
			}
			*target(s) = d
			return nil
		},
		read: func(s *domain.Settings) string { return target(s).String() },
	}
}

func floatSetting(key string, target func(*domain.Settings) *float64) setting {
	return setting{
		key:  key,
		kind: kindFloat,
		env:  []string{EnvName(key)},
		apply: func(s *domain.Settings, raw string) error {
			f, err := parseFloat(raw)
			if err != nil {
				return err
			}
			*target(s) = f
			return nil
		},
		read: func(s *domain.Settings) string { return strconv.FormatFloat(*target(s), 'g', -1, 64) },
	}
}

func providerSetting(key string, target func(*domain.Settings) *domain.AIProvider) setting {
	return setting{
		key:  key,
		kind: kindString,
		env:  []string{EnvName(key)},
		apply: func(s *domain.Settings, raw string) error {
			p, err := parseProvider(raw)
			if err != nil {
				return err
			}
			*target(s) = p
			return nil
		},
		read: func(s *domain.Settings) string { return target(s).String() },
	}
}

//nolint:funlen // one entry per key
func settingsTable() []setting {
	return []setting{
		stringSetting(keyServerAddr, false, func(s *domain.Settings) *string { return &s.Server.Addr }),
		{
			key:  keyServerOrigins,
			kind: kindList,
			env:  []string{EnvName(keyServerOrigins)},
			apply: func(s *domain.Settings, raw string) error {
				origins := splitList(raw)
				if len(origins) == 0 {
					return invalid("at least one origin is required")
				}
				s.Server.AllowedOrigins = origins
				return nil
			},
			read: func(s *domain.Settings) string { return strings.Join(s.Server.AllowedOrigins, ",") },
		},
		{
			key:  keyServerMaxUpload,
			kind: kindInt,
			env:  []string{EnvName(keyServerMaxUpload)},
			apply: func(s *domain.Settings, raw string) error {
				n, err := parseInt(raw, 1)
				if err != nil {
					return err
				}
				s.Server.MaxUploadBytes = int64(n)
				return nil
			},
			read: func(s *domain.Settings) string { return strconv.FormatInt(s.Server.MaxUploadBytes, 10) },
		},

		providerSetting(keyEmbedProvider, func(s *domain.Settings) *domain.AIProvider { return &s.Embedding.Provider }),
		stringSetting(keyEmbedModel, false, func(s *domain.Settings) *string { return &s.Embedding.Model }),
		stringSetting(keyEmbedBaseURL, false, func(s *domain.Settings) *string { return &s.Embedding.BaseURL }),
		stringSetting(keyEmbedAPIKey, true, func(s *domain.Settings) *string { return &s.Embedding.APIKey }),
		floatSetting(keyEmbedRPS, func(s *domain.Settings) *float64 { return &s.Embedding.RequestsPerSecond }),
		intSetting(keyEmbedBatchSize, 1, func(s *domain.Settings) *int { return &s.Embedding.BatchSize }),

		providerSetting(keyLLMProvider, func(s *domain.Settings) *domain.AIProvider { return &s.LLM.Provider }),
		stringSetting(keyLLMModel, false, func(s *domain.Settings) *string { return &s.LLM.Model }),
		stringSetting(keyLLMBaseURL, false, func(s *domain.Settings) *string { return &s.LLM.BaseURL }),
		stringSetting(keyLLMAPIKey, true, func(s *domain.Settings) *string { return &s.LLM.APIKey }),
		floatSetting(keyLLMTemperature, func(s *domain.Settings) *float64 { return &s.LLM.Temperature }),
		intSetting(keyLLMMaxTokens, 0, func(s *domain.Settings) *int { return &s.LLM.MaxTokens }),

		{
			key:  keyIndexBackend,
			kind: kindString,
			env:  []string{EnvName(keyIndexBackend)},
			apply: func(s *domain.Settings, raw string) error {
				b := domain.IndexBackend(strings.ToLower(strings.TrimSpace(raw)))
				if !b.IsValid() {
					return invalid("unknown index backend %q", raw)
				}
				s.Index.Backend = b
				return nil
			},
			read: func(s *domain.Settings) string { return string(s.Index.Backend) },
		},
		stringSetting(keyIndexName, false, func(s *domain.Settings) *string { return &s.Index.Name }),
		stringSetting(keyIndexNamespace, false, func(s *domain.Settings) *string { return &s.Index.Namespace }),
		intSetting(keyIndexDimensions, 1, func(s *domain.Settings) *int { return &s.Index.Dimensions }),
		stringSetting(keyIndexRedisAddr, false, func(s *domain.Settings) *string { return &s.Index.RedisAddr }, "REDIS_ADDR"),
		stringSetting(keyIndexRedisPass, true, func(s *domain.Settings) *string { return &s.Index.RedisPassword }, "REDIS_PASSWORD"),
		intSetting(keyIndexRedisDB, 0, func(s *domain.Settings) *int { return &s.Index.RedisDB }),
		stringSetting(keyIndexPath, false, func(s *domain.Settings) *string { return &s.Index.Path }),
		durationSetting(keyIndexReady, func(s *domain.Settings) *time.Duration { return &s.Index.ReadyTimeout }),
		durationSetting(keyIndexPoll, func(s *domain.Settings) *time.Duration { return &s.Index.PollInterval }),

		stringSetting(keyBlobBaseURL, false, func(s *domain.Settings) *string { return &s.Blob.BaseURL }, "OCEANBOT_BLOB_URL"),

		intSetting(keyRetrievalTopK, 1, func(s *domain.Settings) *int { return &s.Retrieval.TopK }),
	}
}
