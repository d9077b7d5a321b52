package siteconfig

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go-landing-page/internal/domain"
)

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.ConfigError{Kind: domain.ConfigNotFound, Detail: "file does not exist", Err: err}
	}
	return data, err
}
