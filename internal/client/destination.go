package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/shaiso/Relay/internal/domain"
)

// DestinationClient доставляет трансформированные данные в destination API.
//
// Политика retry/backoff та же, что у SourceClient; успехом считается
// любой неошибочный HTTP-статус, тело ответа наружу не возвращается.
type DestinationClient struct {
	client *http.Client
	cfg    Config
	logger *slog.Logger
}

// NewDestinationClient создаёт DestinationClient.
func NewDestinationClient(cfg Config) *DestinationClient {
	cfg = cfg.withDefaults()
	return &DestinationClient{
		client: newHTTPClient(cfg),
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Deliver отправляет данные в destination POST-запросом.
//
// На ошибочный статус или ошибку транспорта — retry по той же политике
// 2^attempt * BackoffBase. После исчерпания попыток — ErrDelivery
// с последней причиной.
func (c *DestinationClient) Deliver(ctx context.Context, endpoint *domain.Endpoint, data map[string]any) error {
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		err := c.attempt(ctx, endpoint, data)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt == c.cfg.MaxRetries-1 {
			break
		}

		c.logger.Debug("retrying delivery",
			"url", endpoint.URL,
			"attempt", attempt,
			"error", err,
		)

		if err := backoffWait(ctx, c.cfg.BackoffBase, attempt); err != nil {
			lastErr = err
			break
		}
	}

	return fmt.Errorf("%w: %v", ErrDelivery, lastErr)
}

// attempt выполняет одну попытку доставки.
func (c *DestinationClient) attempt(ctx context.Context, endpoint *domain.Endpoint, data map[string]any) error {
	reqCtx, cancel := context.WithTimeout(ctx, endpoint.Timeout())
	defer cancel()

	req, err := buildRequest(reqCtx, http.MethodPost, endpoint.URL, endpoint.Headers, endpoint.Params, data)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Тело не нужно, но дочитываем для переиспользования соединения
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode >= http.StatusBadRequest {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return nil
}
