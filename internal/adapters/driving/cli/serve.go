package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ocean48/oceanbot/internal/adapters/driven/config/file"
	"github.com/ocean48/oceanbot/internal/adapters/driving/httpapi"
	"github.com/ocean48/oceanbot/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API used by the staff chat front end.

Endpoints:
  POST /chat                  Stream an answer as server-sent events
  POST /upload                Upload a document and ingest it
  GET  /chunking-stats        Vector index and chunking statistics
  GET  /verify_system_prompt  Report the active behavioural policy
  GET  /                      Liveness

Prompt files are watched and reloaded while the server runs.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if appSettings == nil {
		return errors.New("settings not loaded")
	}

	cfg := httpapi.ConfigFromSettings(appSettings.Server)
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server, err := httpapi.NewServer(cfg, &httpapi.Ports{
		Chat:   chatService,
		Upload: uploadService,
		Stats:  statsService,
		Policy: policyService,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if promptStore != nil {
		watcher, err := file.NewPromptWatcher(promptStore)
		if err != nil {
			logger.Warn("prompt reload disabled: %v", err)
		} else {
			defer watcher.Close()
			go func() { _ = watcher.Run(ctx) }()
		}
	}

	cmd.Printf("OceanBot listening on %s\n", cfg.Addr)
	return server.Run(ctx)
}
