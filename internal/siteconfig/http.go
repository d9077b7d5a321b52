package siteconfig

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go-landing-page/internal/domain"
)

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("siteconfig: http client is not configured")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.ConfigError{Kind: domain.ConfigNotFound, Detail: "invalid url", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ConfigError{
			Kind:   domain.ConfigNotFound,
			Detail: "unexpected status " + resp.Status,
		}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}
