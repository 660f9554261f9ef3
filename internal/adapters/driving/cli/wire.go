package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ocean48/oceanbot/internal/adapters/driven/ai"
	"github.com/ocean48/oceanbot/internal/adapters/driven/blob"
	"github.com/ocean48/oceanbot/internal/adapters/driven/config/file"
	"github.com/ocean48/oceanbot/internal/adapters/driven/vector/chromem"
	"github.com/ocean48/oceanbot/internal/adapters/driven/vector/redis"
	"github.com/ocean48/oceanbot/internal/chunkers"
	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/core/ports/driven"
	"github.com/ocean48/oceanbot/internal/core/ports/driving"
	"github.com/ocean48/oceanbot/internal/core/services"
	"github.com/ocean48/oceanbot/internal/loaders"
	"github.com/ocean48/oceanbot/internal/loaders/csv"
	"github.com/ocean48/oceanbot/internal/loaders/docx"
	"github.com/ocean48/oceanbot/internal/loaders/pdf"
	"github.com/ocean48/oceanbot/internal/loaders/plaintext"
	"github.com/ocean48/oceanbot/internal/logger"
)

// indexConnectTimeout bounds the initial connection to the vector index.
const indexConnectTimeout = 5 * time.Second

// Services used by commands. They are built lazily by ensureServices so that
// commands such as version and config never touch the network. Tests assign
// them directly.
var (
	settingsService  driving.SettingsService
	chatService      driving.ChatService
	ingestionService driving.IngestionService
	uploadService    driving.UploadService
	statsService     driving.StatsService
	policyService    driving.PolicyService

	classify = chunkers.Classify

	appSettings   *domain.Settings
	promptStore   *file.PromptStore
	servicesReady bool
	closers       []func()
)

// loadSettings opens the config store under --config-dir.
func loadSettings() error {
	if settingsService != nil {
		return nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService = services.NewSettingsService(store, os.LookupEnv)
	return nil
}

// ensureServices resolves settings and builds the ingestion and answer
// pipelines. Adapters that fail to start are left nil and logged; the
// affected requests then fail with the matching unavailable error.
func ensureServices(ctx context.Context) error {
	if servicesReady {
		return nil
	}
	if err := loadSettings(); err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	appSettings = settings

	promptDir := ""
	if configDir != "" {
		promptDir = filepath.Join(configDir, "prompts")
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}
	promptStore = prompts

	models := ai.Build(ctx, settings)
	closers = append(closers, models.Close)

	index, err := openIndex(ctx, &settings.Index)
	if err != nil {
		logger.Warn("vector index unavailable: %v", err)
	} else {
		closers = append(closers, func() { _ = index.Close() })
	}

	var blobs driven.BlobStore
	if settings.Blob.BaseURL != "" {
		store, err := blob.New(settings.Blob.BaseURL)
		if err != nil {
			logger.Warn("blob store unavailable: %v", err)
		} else {
			blobs = store
		}
	}

	loaderRegistry := loaders.NewRegistry(pdf.New(), docx.New(), csv.New(), plaintext.New())
	chunkerRegistry := chunkers.NewRegistry()
	chunkers.RegisterDefaults(chunkerRegistry, nil)

	provisioner := services.NewIndexProvisioner(index, domain.IndexSpec{
		Name:       settings.Index.Name,
		Dimensions: settings.Index.Dimensions,
		Metric:     domain.MetricCosine,
	}, settings.Index.ReadyTimeout, settings.Index.PollInterval)

	ingestion := services.NewIngestionService(
		loaderRegistry, chunkerRegistry, chunkers.Classify,
		models.Embedding, index, provisioner,
		services.IngestionOptions{
			Namespace:    settings.Index.Namespace,
			BatchSize:    settings.Embedding.BatchSize,
			TextFallback: chunkers.NewTextFallback(nil),
		},
	)

	chatOpts := ai.ChatOptions(&settings.LLM)
	conditioner := services.NewQueryConditioner(models.LLM, prompts, chatOpts)

	ingestionService = ingestion
	uploadService = services.NewUploadService(blobs, ingestion)
	chatService = services.NewAnswerService(conditioner, models.Embedding, index, models.LLM, prompts,
		services.AnswerOptions{
			Namespace: settings.Index.Namespace,
			TopK:      settings.Retrieval.TopK,
			Chat:      chatOpts,
		})
	statsService = services.NewStatsService(index, loaderRegistry)
	policyService = services.NewPolicyService(prompts)

	servicesReady = true
	return nil
}

// openIndex connects to the configured vector index backend.
func openIndex(ctx context.Context, cfg *domain.IndexSettings) (driven.VectorIndex, error) {
	switch cfg.Backend {
	case domain.IndexBackendChromem:
		idx, err := chromem.New(chromem.Config{
			Path:       cfg.Path,
			IndexName:  cfg.Name,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return idx, nil

	case domain.IndexBackendRedis:
		connectCtx, cancel := context.WithTimeout(ctx, indexConnectTimeout)
		defer cancel()
		idx, err := redis.New(connectCtx, redis.Config{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			IndexName:  cfg.Name,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return idx, nil

	default:
		return nil, fmt.Errorf("%w: unknown index backend %q", domain.ErrInvalidInput, cfg.Backend)
	}
}

// closeServices releases adapters opened by ensureServices.
func closeServices() {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	closers = nil
}
