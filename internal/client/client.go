package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Значения по умолчанию.
const (
	defaultMaxRetries   = 3
	defaultMaxConns     = 100
	defaultMaxIdleConns = 20
	defaultBackoffBase  = time.Second
	maxResponseBody     = 10 * 1024 * 1024 // 10 MB
)

// rawContentKey — ключ, под который заворачивается не-JSON тело ответа.
const rawContentKey = "raw_content"

// Config — конфигурация сетевых клиентов.
type Config struct {
	// MaxRetries — максимальное количество попыток (включая первую). Default: 3.
	MaxRetries int

	// MaxConns — максимум одновременных соединений на host. Default: 100.
	MaxConns int

	// MaxIdleConns — размер keep-alive пула. Default: 20.
	MaxIdleConns int

	// BackoffBase — базовая задержка exponential backoff
	// (wait = BackoffBase * 2^attempt). Default: 1s.
	BackoffBase time.Duration

	// Logger — логгер. Default: slog.Default().
	Logger *slog.Logger
}

// withDefaults заполняет незаданные поля конфигурации.
func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.MaxConns <= 0 {
		c.MaxConns = defaultMaxConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// newHTTPClient создаёт пулированный http.Client.
//
// Таймаут на клиенте не выставляется — per-request таймаут приходит
// из endpoint descriptor'а через context.
func newHTTPClient(cfg Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     cfg.MaxConns,
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConns,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// buildRequest собирает HTTP-запрос: метод, URL с query-параметрами,
// заголовки и сериализованное JSON-тело.
func buildRequest(ctx context.Context, method, rawURL string, headers, params map[string]string, body any) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if len(params) > 0 {
		q := u.Query()
		for key, val := range params {
			q.Set(key, val)
		}
		u.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, val := range headers {
		req.Header.Set(key, val)
	}

	if bodyReader != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// parseBody декодирует тело ответа.
// JSON-объект возвращается как mapping; всё остальное (в том числе
// JSON-массив верхнего уровня) заворачивается под rawContentKey —
// разрешение dot-путей требует mapping в корне документа.
func parseBody(body []byte) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return map[string]any{rawContentKey: string(body)}
	}
	return parsed
}

// headerMap преобразует http.Header в map[string]string.
func headerMap(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for key := range h {
		headers[key] = h.Get(key)
	}
	return headers
}

// backoffWait ждёт base * 2^attempt перед следующей попыткой.
// Прерывается отменой context'а.
func backoffWait(ctx context.Context, base time.Duration, attempt int) error {
	delay := base << attempt

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
