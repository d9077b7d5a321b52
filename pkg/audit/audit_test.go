package audit_test

import (
	"context"
	"testing"

	"go-landing-page/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", audit.MaskEmail("jo@example.com"))
	assert.Equal(t, "***@example.com", audit.MaskEmail("j@example.com"))
	assert.Equal(t, "***", audit.MaskEmail("ab"))
}

func TestLoggerLog(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := audit.NewWithZap(zap.New(core), "landing-page", "test")

	l.Log(context.Background(), audit.Event{
		Event:     audit.EventSubmissionAccepted,
		SiteID:    "example.com",
		Email:     "jo@example.com",
		RequestID: "req-1",
		Details:   map[string]interface{}{"interest": "Sourcing"},
	})
	l.Log(context.Background(), audit.Event{Event: audit.EventSubmissionFailed})

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, zapcore.InfoLevel, first.Level)
	assert.Equal(t, "submission_accepted", first.Message)
	fields := first.ContextMap()
	assert.Equal(t, "j***@example.com", fields["email"])
	assert.Equal(t, audit.HashValue("jo@example.com"), fields["email_hash"])
	assert.Equal(t, "example.com", fields["site_id"])
	assert.Equal(t, `{"interest":"Sourcing"}`, fields["details"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *audit.Logger
	assert.NotPanics(t, func() {
		l.Log(context.Background(), audit.Event{Event: audit.EventSubmissionAccepted})
	})
}
