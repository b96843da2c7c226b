package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/storage_portal/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("PORTAL_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 15*time.Second || c.HTTP.WriteTimeout != 60*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 30*time.Second || c.HTTP.GracefulTimeout != 10*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.MaxUploadBytes != 50<<20 {
		t.Fatalf("HTTP.MaxUploadBytes: want 50MB, got %d", c.HTTP.MaxUploadBytes)
	}

	// Tracing
	if c.Tracing.Enabled || c.Tracing.ServiceName != "storage-portal" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Postgres: без DSN работаем на памяти
	if c.Postgres.DSN != "" {
		t.Fatalf("Postgres.DSN: want empty, got %q", c.Postgres.DSN)
	}
	if c.Postgres.MaxConns != 10 {
		t.Fatalf("Postgres.MaxConns: want 10, got %d", c.Postgres.MaxConns)
	}

	// Kafka
	if c.Kafka.Enabled {
		t.Fatalf("Kafka.Enabled: want false")
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}

	// Cache
	if c.Cache.Capacity != 256 || c.Cache.StaleTime != 30*time.Second || c.Cache.Retries != 1 {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Backend и Session
	if c.Backend.BaseURL == "" || c.Backend.Timeout != 30*time.Second {
		t.Fatalf("Backend defaults wrong: %+v", c.Backend)
	}
	if c.Session.TTL != 12*time.Hour || c.Session.PurgeSchedule != "@every 10m" || c.Session.CookieSecure {
		t.Fatalf("Session defaults wrong: %+v", c.Session)
	}

	// RateLimit
	if c.RateLimit.UploadRPS != 2 || c.RateLimit.UploadBurst != 5 {
		t.Fatalf("RateLimit defaults wrong: %+v", c.RateLimit)
	}

	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "PORTAL_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_KAFKA_ENABLED", "true")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_START_OFFSET", "first")
	t.Setenv(p+"_CACHE_STALE_TIME", "1m")
	t.Setenv(p+"_CACHE_RETRIES", "-1")
	t.Setenv(p+"_BACKEND_BASE_URL", "https://api.example")
	t.Setenv(p+"_SESSION_TTL", "2h")
	t.Setenv(p+"_SESSION_COOKIE_SECURE", "true")
	t.Setenv(p+"_RATELIMIT_UPLOAD_RPS", "0.5")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if !c.Kafka.Enabled || !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) || c.Kafka.StartOffset != "first" {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if c.Cache.StaleTime != time.Minute || c.Cache.Retries != -1 {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Backend.BaseURL != "https://api.example" {
		t.Fatalf("Backend overrides wrong: %+v", c.Backend)
	}
	if c.Session.TTL != 2*time.Hour || !c.Session.CookieSecure {
		t.Fatalf("Session overrides wrong: %+v", c.Session)
	}
	if c.RateLimit.UploadRPS != 0.5 {
		t.Fatalf("RateLimit overrides wrong: %+v", c.RateLimit)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "PORTAL_TEST_BAD"
	t.Setenv(p+"_SESSION_TTL", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
