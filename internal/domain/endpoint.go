package domain

import (
	"fmt"
	"net/http"
	"time"
)

// defaultTimeoutSec — таймаут HTTP-запроса по умолчанию.
const defaultTimeoutSec = 30

// Endpoint — конфигурация одного HTTP-вызова (source или destination).
//
// Endpoint приходит из конфигурации customer'а и read-only для core.
// Один и тот же Endpoint нельзя использовать из нескольких
// одновременных запросов, если caller мутирует его maps.
type Endpoint struct {
	// URL — адрес endpoint'а.
	URL string `json:"url" yaml:"url" validate:"required,url"`

	// Method — HTTP-метод: GET, POST, PUT, DELETE. Default: GET.
	Method string `json:"method,omitempty" yaml:"method" validate:"omitempty,oneof=GET POST PUT DELETE"`

	// Headers — HTTP-заголовки запроса (auth-заголовки передаются как есть).
	Headers map[string]string `json:"headers,omitempty" yaml:"headers"`

	// Params — query-параметры запроса.
	Params map[string]string `json:"params,omitempty" yaml:"params"`

	// Body — тело запроса (для POST/PUT).
	Body map[string]any `json:"body,omitempty" yaml:"body"`

	// TimeoutSec — таймаут запроса в секундах. Default: 30.
	TimeoutSec int `json:"timeout_sec,omitempty" yaml:"timeout_sec" validate:"omitempty,min=1"`
}

// Timeout возвращает таймаут запроса как time.Duration.
func (e *Endpoint) Timeout() time.Duration {
	sec := e.TimeoutSec
	if sec <= 0 {
		sec = defaultTimeoutSec
	}
	return time.Duration(sec) * time.Second
}

// HTTPMethod возвращает нормализованный HTTP-метод.
func (e *Endpoint) HTTPMethod() (string, error) {
	method := e.Method
	if method == "" {
		return http.MethodGet, nil
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return method, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
}

// Response — ответ source API.
type Response struct {
	// StatusCode — HTTP-код ответа.
	StatusCode int `json:"status_code"`

	// Data — распарсенное тело ответа.
	// JSON-объект декодируется как есть; всё остальное
	// заворачивается в {"raw_content": <текст>}.
	Data map[string]any `json:"data"`

	// Headers — заголовки ответа.
	Headers map[string]string `json:"headers"`

	// Latency — измеренное время запрос-ответ.
	Latency time.Duration `json:"latency"`
}
