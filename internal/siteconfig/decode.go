package siteconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"go-landing-page/internal/domain"
)

// Decode turns a raw document into a SiteConfig.
// Missing fields are allowed; a document that is not a JSON object, or a field of
// the wrong JSON type, is malformed.
func Decode(location string, data []byte) (*domain.SiteConfig, error) {
	malformed := func(detail string, err error) error {
		return &domain.ConfigError{Kind: domain.ConfigMalformed, Location: location, Detail: detail, Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, malformed("body is not valid JSON", nil)
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, malformed("document is not a JSON object", nil)
	}

	var cfg domain.SiteConfig
	if err := json.Unmarshal(trimmed, &cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, malformed(fmt.Sprintf("field %q must be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value), nil)
		}
		return nil, malformed("cannot decode document", err)
	}

	if cfg.ContactFormLambdaURL != "" && !isAbsoluteHTTPURL(cfg.ContactFormLambdaURL) {
		return nil, malformed("contactFormLambdaURL must be an absolute http(s) URL", nil)
	}

	return &cfg, nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
