// Package formclient posts contact form payloads to a form-processing endpoint.
package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go-landing-page/internal/domain"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseBytes caps how much of the endpoint's reply is read
const maxResponseBytes = 64 << 10

// Client implements domain.Submitter over JSON/HTTP
type Client struct {
	http *http.Client
}

var _ domain.Submitter = (*Client)(nil)

// New creates a client. A nil httpClient gets a traced default transport.
// Timeouts come from the caller's context, not from the client.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{http: httpClient}
}

// Submit issues exactly one POST of payload to endpoint.
// Success means a 2xx status and a body with status "success"; anything else is a
// *domain.SubmissionError.
func (c *Client) Submit(ctx context.Context, endpoint string, payload domain.SubmissionPayload) (*domain.SubmissionResponse, error) {
	if endpoint == "" {
		return nil, transportError(errors.New("submission endpoint is not configured"))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to read response: %w", err))
	}

	// A body that is not JSON simply has no status and no message
	var out domain.SubmissionResponse
	_ = json.Unmarshal(raw, &out)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && out.Status == domain.SubmissionSucceeded {
		return &out, nil
	}

	reason := out.Message
	if reason == "" {
		reason = domain.GenericSubmissionFailure
	}
	return &out, &domain.SubmissionError{
		Kind:       domain.SubmissionServerRejected,
		StatusCode: resp.StatusCode,
		Reason:     reason,
	}
}

func transportError(err error) *domain.SubmissionError {
	return &domain.SubmissionError{
		Kind:   domain.SubmissionTransport,
		Reason: domain.TransportFailureMessage,
		Err:    err,
	}
}
