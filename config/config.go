package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	ServiceName string
	// Site configuration document (http(s) URL or local path)
	SiteConfigURL     string
	SiteConfigTimeout time.Duration
	// Contact form
	SubmitTimeout   time.Duration
	FormSessionTTL  time.Duration
	MaxFormSessions int
	SanitizeMarkup  bool
	AllowedOrigins  []string
	// Relay (the submission endpoint served by this binary)
	RelayEnabled bool
	MailProvider string // "ses" or "smtp"
	AWSRegion    string
	SenderEmail  string
	OwnerEmail   string
	// SMTP Configuration
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	// Submission archive
	DBUrl string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// Tracing
	OTLPEndpoint string
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; in production the environment is authoritative
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("OTEL_SERVICE_NAME", "landing-page"),
		// Site configuration
		SiteConfigURL:     getEnv("SITE_CONFIG_URL", "public/config.json"),
		SiteConfigTimeout: getEnvSeconds("SITE_CONFIG_TIMEOUT_SECONDS", 10),
		// Contact form
		SubmitTimeout:   getEnvSeconds("SUBMIT_TIMEOUT_SECONDS", 15),
		FormSessionTTL:  time.Duration(getEnvInt("FORM_SESSION_TTL_MINUTES", 30)) * time.Minute,
		MaxFormSessions: getEnvInt("MAX_FORM_SESSIONS", 10000),
		SanitizeMarkup:  getEnvBool("SANITIZE_MARKUP", false),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		// Relay
		RelayEnabled: getEnvBool("RELAY_ENABLED", false),
		MailProvider: strings.ToLower(getEnv("MAIL_PROVIDER", "ses")),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		OwnerEmail:   getEnv("OWNER_EMAIL", ""),
		// SMTP Configuration
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		// Submission archive (optional)
		DBUrl: getEnv("DATABASE_URL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Tracing
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.RelayEnabled && (cfg.SenderEmail == "" || cfg.OwnerEmail == "") {
		log.Println("WARNING: SENDER_EMAIL or OWNER_EMAIL is missing. The contact relay will answer 503.")
	}

	if cfg.RelayEnabled && cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvSeconds reads a whole number of seconds
func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
