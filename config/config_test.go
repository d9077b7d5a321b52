package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "public/config.json", cfg.SiteConfigURL)
	assert.Equal(t, 10*time.Second, cfg.SiteConfigTimeout)
	assert.Equal(t, 15*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 30*time.Minute, cfg.FormSessionTTL)
	assert.Equal(t, 10000, cfg.MaxFormSessions)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "ses", cfg.MailProvider)
	assert.False(t, cfg.RelayEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SITE_CONFIG_URL", "https://cdn.example.com/config.json")
	t.Setenv("SUBMIT_TIMEOUT_SECONDS", "5")
	t.Setenv("FORM_SESSION_TTL_MINUTES", "10")
	t.Setenv("SANITIZE_MARKUP", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.com, ,https://b.com")
	t.Setenv("RELAY_ENABLED", "1")
	t.Setenv("MAIL_PROVIDER", "SMTP")
	t.Setenv("RATE_LIMIT_CONTACT_THRESHOLD", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://cdn.example.com/config.json", cfg.SiteConfigURL)
	assert.Equal(t, 5*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 10*time.Minute, cfg.FormSessionTTL)
	assert.True(t, cfg.SanitizeMarkup)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RelayEnabled)
	assert.Equal(t, "smtp", cfg.MailProvider)
	assert.Equal(t, 5, cfg.RateLimitContactThreshold, "invalid numbers fall back to the default")
}
