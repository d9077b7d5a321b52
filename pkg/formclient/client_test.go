package formclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-landing-page/internal/domain"
	"go-landing-page/pkg/formclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = domain.SubmissionPayload{
	Name:       "Jo",
	Email:      "jo@example.com",
	Company:    "Acme",
	Interest:   "Sourcing",
	Message:    "hi",
	DomainName: "example.com",
}

func endpoint(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmit(t *testing.T) {
	client := formclient.New(nil)

	t.Run("Should post the payload as JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, map[string]string{
				"name":       "Jo",
				"email":      "jo@example.com",
				"company":    "Acme",
				"interest":   "Sourcing",
				"message":    "hi",
				"domainName": "example.com",
			}, got)

			_, _ = w.Write([]byte(`{"status":"success","message":"ok"}`))
		}))
		defer srv.Close()

		resp, err := client.Submit(context.Background(), srv.URL, payload)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Message)
	})

	t.Run("Should issue exactly one request", func(t *testing.T) {
		var hits int32
		srv := endpoint(t, http.StatusInternalServerError, `{}`, &hits)

		_, err := client.Submit(context.Background(), srv.URL, payload)
		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("Should surface the server message on non-2xx", func(t *testing.T) {
		srv := endpoint(t, http.StatusBadRequest, `{"status":"error","message":"Email bounced"}`, nil)

		_, err := client.Submit(context.Background(), srv.URL, payload)
		var subErr *domain.SubmissionError
		require.True(t, errors.As(err, &subErr))
		assert.Equal(t, domain.SubmissionServerRejected, subErr.Kind)
		assert.Equal(t, http.StatusBadRequest, subErr.StatusCode)
		assert.Equal(t, "Email bounced", subErr.Reason)
	})

	t.Run("Should treat 2xx without success status as rejected", func(t *testing.T) {
		srv := endpoint(t, http.StatusOK, `{"message":"Form submitted successfully"}`, nil)

		_, err := client.Submit(context.Background(), srv.URL, payload)
		var subErr *domain.SubmissionError
		require.True(t, errors.As(err, &subErr))
		assert.Equal(t, domain.SubmissionServerRejected, subErr.Kind)
		assert.Equal(t, "Form submitted successfully", subErr.Reason)
	})

	t.Run("Should fall back to a generic reason for non-JSON bodies", func(t *testing.T) {
		srv := endpoint(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)

		_, err := client.Submit(context.Background(), srv.URL, payload)
		var subErr *domain.SubmissionError
		require.True(t, errors.As(err, &subErr))
		assert.Equal(t, domain.GenericSubmissionFailure, subErr.Reason)
	})

	t.Run("Should report transport failures", func(t *testing.T) {
		srv := endpoint(t, http.StatusOK, `{}`, nil)
		url := srv.URL
		srv.Close()

		_, err := client.Submit(context.Background(), url, payload)
		var subErr *domain.SubmissionError
		require.True(t, errors.As(err, &subErr))
		assert.Equal(t, domain.SubmissionTransport, subErr.Kind)
		assert.Equal(t, domain.TransportFailureMessage, subErr.Reason)
	})

	t.Run("Should honour context deadlines", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.Submit(ctx, srv.URL, payload)
		var subErr *domain.SubmissionError
		require.True(t, errors.As(err, &subErr))
		assert.Equal(t, domain.SubmissionTransport, subErr.Kind)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Should fail fast without an endpoint", func(t *testing.T) {
		_, err := client.Submit(context.Background(), "", payload)
		var subErr *domain.SubmissionError
		require.True(t, errors.As(err, &subErr))
		assert.Equal(t, domain.SubmissionTransport, subErr.Kind)
	})
}
