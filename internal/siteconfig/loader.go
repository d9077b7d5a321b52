// Package siteconfig fetches and decodes the site configuration document.
package siteconfig

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-landing-page/internal/domain"
)

// DefaultTimeout bounds a single document fetch
const DefaultTimeout = 10 * time.Second

// maxDocumentBytes caps the configuration document size
const maxDocumentBytes = 4 << 20

// Loader fetches the configuration document from an http(s) URL or a local file.
// It performs exactly one attempt per Load call; retrying is left to a human fixing the document.
type Loader struct {
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader. A nil client falls back to a plain http.Client.
func NewLoader(client *http.Client, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Loader{
		http:    client,
		timeout: timeout,
	}
}

// Load fetches and decodes the document at location.
// Every failure is a *domain.ConfigError.
func (l *Loader) Load(ctx context.Context, location string) (*domain.SiteConfig, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &domain.ConfigError{
			Kind:   domain.ConfigNotFound,
			Detail: "no configuration location given",
		}
	}

	var (
		data []byte
		err  error
	)
	if isHTTP(location) {
		data, err = loadHTTP(ctx, l.http, location, l.timeout)
	} else {
		data, err = loadFile(ctx, strings.TrimPrefix(location, "file://"))
	}
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Location = location
			return nil, cfgErr
		}
		return nil, &domain.ConfigError{Kind: domain.ConfigUnavailable, Location: location, Err: err}
	}

	return Decode(location, data)
}

func isHTTP(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
