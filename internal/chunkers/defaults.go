package chunkers

import (
	"github.com/ocean48/oceanbot/internal/chunkers/entry"
	"github.com/ocean48/oceanbot/internal/chunkers/menu"
	"github.com/ocean48/oceanbot/internal/chunkers/text"
	"github.com/ocean48/oceanbot/internal/core/domain"
)

// RegisterDefaults registers the five built-in strategies.
// Supported config keys for the general strategy:
//   - chunk_size (int): Characters per window (default: 1000)
//   - overlap (int): Overlapping characters between windows (default: 200)
func RegisterDefaults(r *Registry, cfg map[string]any) {
	r.Register(entry.Wine())
	r.Register(menu.New())
	r.Register(entry.Allergen())
	r.Register(entry.Spirits())
	r.Register(text.New(textOptions(cfg, domain.ChunkTypeGeneral)...))
}

// NewTextFallback builds the splitter applied to single-document .txt loads.
func NewTextFallback(cfg map[string]any) *text.Splitter {
	return text.New(textOptions(cfg, domain.ChunkTypeTextSplit)...)
}

func textOptions(cfg map[string]any, ct domain.ChunkType) []text.Option {
	opts := []text.Option{text.WithChunkType(ct)}
	if cfg != nil {
		if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
			opts = append(opts, text.WithChunkSize(size))
		}
		if _, ok := cfg["overlap"]; ok {
			opts = append(opts, text.WithOverlap(getIntFromConfig(cfg, "overlap")))
		}
	}
	return opts
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
