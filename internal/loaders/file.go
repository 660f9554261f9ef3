package loaders

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// ReadFile reads a source file, reporting failures as *domain.StorageError.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.StorageError{Key: path, Err: domain.ErrNotFound}
		}
		return nil, &domain.StorageError{Key: path, Err: err}
	}
	return data, nil
}
