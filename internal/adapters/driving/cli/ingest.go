package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

var (
	ingestFromBlob bool
	ingestArchive  bool
	ingestDir      string
	ingestJSON     bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a document into the vector index",
	Long: `Load, chunk, embed and index a single document.

The chunking strategy is chosen from the file name, e.g. "Wine_List.pdf"
is split per wine and "Allergen_Matrix.csv" per dish.

With --archive the file is also stored in blob storage under --dir, the
same as an HTTP upload. With --from-blob the argument is a blob key and
the archived copy is ingested again.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestFromBlob, "from-blob", false, "treat the argument as a blob storage key")
	ingestCmd.Flags().BoolVar(&ingestArchive, "archive", false, "store the file in blob storage before ingesting")
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "blob directory used with --archive")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the result as JSON")
	ingestCmd.MarkFlagsMutuallyExclusive("from-blob", "archive")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	ctx := cmd.Context()
	target := args[0]

	var (
		result *domain.IngestResult
		err    error
	)
	switch {
	case ingestFromBlob:
		if uploadService == nil {
			return errors.New("upload service not configured")
		}
		result, err = uploadService.IngestBlob(ctx, target)

	case ingestArchive:
		if uploadService == nil {
			return errors.New("upload service not configured")
		}
		data, readErr := os.ReadFile(target)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", target, readErr)
		}
		result, err = uploadService.Upload(ctx, ingestDir, filepath.Base(target), data)

	default:
		if ingestionService == nil {
			return errors.New("ingestion service not configured")
		}
		result, err = ingestionService.Ingest(ctx, target, strings.ToLower(filepath.Ext(target)))
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Ingested %s\n", result.Filename)
	cmd.Printf("  Strategy: %s\n", result.ChunkingStrategy)
	cmd.Printf("  Chunks:   %d\n", result.TotalChunks)
	return nil
}
