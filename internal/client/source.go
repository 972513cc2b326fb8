package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shaiso/Relay/internal/domain"
)

// SourceClient загружает данные из source API с retry и exponential backoff.
//
// Соединения переиспользуются через общий пулированный http.Client;
// независимые jobs могут выполнять Fetch параллельно.
type SourceClient struct {
	client *http.Client
	cfg    Config
	logger *slog.Logger
}

// NewSourceClient создаёт SourceClient.
func NewSourceClient(cfg Config) *SourceClient {
	cfg = cfg.withDefaults()
	return &SourceClient{
		client: newHTTPClient(cfg),
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Fetch выполняет запрос к source endpoint'у.
//
// Ошибочный HTTP-статус (>= 400), ошибка транспорта и таймаут приводят
// к retry: до MaxRetries попыток, с ожиданием 2^attempt * BackoffBase перед
// каждой следующей. После исчерпания попыток возвращается ErrSourceFetch
// с последней причиной.
func (c *SourceClient) Fetch(ctx context.Context, endpoint *domain.Endpoint) (*domain.Response, error) {
	method, err := endpoint.HTTPMethod()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceFetch, err)
	}

	// Тело уходит только с POST/PUT
	var body any
	if method == http.MethodPost || method == http.MethodPut {
		if endpoint.Body != nil {
			body = endpoint.Body
		}
	}

	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		resp, err := c.attempt(ctx, method, endpoint, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt == c.cfg.MaxRetries-1 {
			break
		}

		c.logger.Debug("retrying source fetch",
			"url", endpoint.URL,
			"attempt", attempt,
			"error", err,
		)

		if err := backoffWait(ctx, c.cfg.BackoffBase, attempt); err != nil {
			lastErr = err
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrSourceFetch, lastErr)
}

// attempt выполняет одну попытку запроса.
func (c *SourceClient) attempt(ctx context.Context, method string, endpoint *domain.Endpoint, body any) (*domain.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, endpoint.Timeout())
	defer cancel()

	req, err := buildRequest(reqCtx, method, endpoint.URL, endpoint.Headers, endpoint.Params, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	latency := time.Since(start)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
	}

	return &domain.Response{
		StatusCode: resp.StatusCode,
		Data:       parseBody(respBody),
		Headers:    headerMap(resp.Header),
		Latency:    latency,
	}, nil
}
