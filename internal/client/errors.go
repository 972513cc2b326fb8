package client

import (
	"errors"
	"fmt"
)

// Ошибки сетевых стадий.
var (
	// ErrSourceFetch — загрузка из source API не удалась после всех retry.
	ErrSourceFetch = errors.New("source fetch failed")

	// ErrDelivery — доставка в destination API не удалась после всех retry.
	ErrDelivery = errors.New("delivery failed")
)

// HTTPError — ответ с ошибочным HTTP-статусом.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error реализует интерфейс error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}
