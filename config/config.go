package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const defaultPrefix = "PORTAL"

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"15s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"60s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"30s" envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"10s" envconfig:"GRACEFUL_TIMEOUT"`
	MaxUploadBytes    int64         `default:"52428800" envconfig:"MAX_UPLOAD_BYTES"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"storage-portal" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// Postgres — пустой DSN: сессии хранятся в памяти процесса.
type Postgres struct {
	DSN             string        `envconfig:"DSN"`
	MaxConns        int32         `default:"10" envconfig:"MAX_CONNS"`
	MaxConnLifetime time.Duration `default:"1h" envconfig:"MAX_CONN_LIFETIME"`
	MaxConnIdleTime time.Duration `default:"10m" envconfig:"MAX_CONN_IDLE_TIME"`
}

type Kafka struct {
	Enabled        bool          `default:"false" envconfig:"ENABLED"`
	Brokers        []string      `default:"kafka:9092" envconfig:"BROKERS"`
	Topic          string        `default:"storage.events" envconfig:"TOPIC"`
	GroupID        string        `default:"storage-portal" envconfig:"GROUP_ID"`
	StartOffset    string        `default:"last" envconfig:"START_OFFSET"`
	MaxWait        time.Duration `default:"500ms" envconfig:"MAX_WAIT"`
	ProcessTimeout time.Duration `default:"5s" envconfig:"PROCESS_TIMEOUT"`
	RetryInitial   time.Duration `default:"1s" envconfig:"RETRY_INITIAL"`
	RetryMax       time.Duration `default:"30s" envconfig:"RETRY_MAX"`
}

// Cache — настройки кэша запросов одной сессии.
type Cache struct {
	Capacity     int           `default:"256" envconfig:"CAPACITY"`
	StaleTime    time.Duration `default:"30s" envconfig:"STALE_TIME"`
	Retries      int           `default:"1" envconfig:"RETRIES"`
	RetryDelay   time.Duration `default:"250ms" envconfig:"RETRY_DELAY"`
	FetchTimeout time.Duration `default:"10s" envconfig:"FETCH_TIMEOUT"`
}

type Backend struct {
	BaseURL string        `default:"http://storage-api:8000" envconfig:"BASE_URL"`
	Timeout time.Duration `default:"30s" envconfig:"TIMEOUT"`
}

type Session struct {
	TTL           time.Duration `default:"12h" envconfig:"TTL"`
	PurgeSchedule string        `default:"@every 10m" envconfig:"PURGE_SCHEDULE"`
	CookieSecure  bool          `default:"false" envconfig:"COOKIE_SECURE"`
	SubmitTimeout time.Duration `default:"30s" envconfig:"SUBMIT_TIMEOUT"`
}

type RateLimit struct {
	UploadRPS   float64 `default:"2" envconfig:"UPLOAD_RPS"`
	UploadBurst int     `default:"5" envconfig:"UPLOAD_BURST"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	HTTP      HTTP
	Tracing   Tracing
	Postgres  Postgres
	Kafka     Kafka
	Cache     Cache
	Backend   Backend
	Session   Session
	RateLimit RateLimit
	Logger    Logger
}

// Load — конфигурация из окружения с префиксом PORTAL.
func Load() (Config, error) {
	return LoadWithPrefix(defaultPrefix)
}

// LoadWithPrefix — то же с произвольным префиксом (для тестов).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
