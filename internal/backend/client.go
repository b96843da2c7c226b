package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/storage_portal/internal/domain"
	"github.com/Gunvolt24/storage_portal/internal/ports"
	"github.com/Gunvolt24/storage_portal/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 15 * time.Second

	// maxResponseBytes — ответы бэкенда больше этого не читаем.
	maxResponseBytes = 10 << 20
)

// Config — настройки клиента бэкенда хранилища.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client — HTTP-клиент бэкенда; сам по себе токена не несёт.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend: base url is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// WithToken — клиент от имени владельца токена.
func (c *Client) WithToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Session — вызовы бэкенда с Authorization: Bearer <token>.
type Session struct {
	client *Client
	token  string
}

// Проверка, что Session удовлетворяет интерфейсу ports.StorageAPI.
var _ ports.StorageAPI = (*Session)(nil)

type request struct {
	action      string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(action, method, path string, payload any) (request, error) {
	req := request{action: action, method: method, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("%s: encode body: %w", action, err)
		}
		req.body = bytes.NewReader(b)
		req.contentType = "application/json"
	}
	return req, nil
}

// do — выполняет запрос; не-2xx превращается в *domain.APIError со статусом бэкенда.
func (s *Session) do(ctx context.Context, r request) (int, []byte, error) {
	if s.token == "" {
		return 0, nil, domain.ErrUnauthorized
	}

	target := s.client.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", r.action, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(r.action, "error").Observe(time.Since(start).Seconds())
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, domain.NormalizeError(fmt.Errorf("%s: %w", r.action, err))
		}
		return 0, nil, domain.NewTransportError(fmt.Errorf("%s: %w", r.action, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	metrics.BackendRequests.WithLabelValues(r.action, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return resp.StatusCode, nil, domain.NewTransportError(fmt.Errorf("%s: read response: %w", r.action, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, domain.NewUpstreamError(resp.StatusCode, errorMessage(body))
	}
	return resp.StatusCode, body, nil
}

// doJSON — do + разбор JSON-ответа в out.
func (s *Session) doJSON(ctx context.Context, r request, out any) error {
	_, body, err := s.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewUpstreamError(http.StatusBadGateway, fmt.Sprintf("%s: malformed response: %v", r.action, err))
	}
	return nil
}
