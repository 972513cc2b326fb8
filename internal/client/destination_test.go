package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shaiso/Relay/internal/domain"
)

func TestDestinationClient_PostsTransformedDocument(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("delivery must POST, got %s", r.Method)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("expected passthrough X-Api-Key header, got %q", r.Header.Get("X-Api-Key"))
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := NewDestinationClient(testConfig())
	endpoint := &domain.Endpoint{
		URL:     server.URL,
		Headers: map[string]string{"X-Api-Key": "secret"},
	}

	err := c.Deliver(context.Background(), endpoint, map[string]any{"customers": []any{"a"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := received["customers"]; !ok {
		t.Errorf("destination should receive the document, got %v", received)
	}
}

func TestDestinationClient_RetriesOnErrorStatus(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewDestinationClient(testConfig())
	if err := c.Deliver(context.Background(), &domain.Endpoint{URL: server.URL}, nil); err != nil {
		t.Fatalf("delivery should succeed on retry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestDestinationClient_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewDestinationClient(testConfig())
	err := c.Deliver(context.Background(), &domain.Endpoint{URL: server.URL}, map[string]any{"x": 1})

	if !errors.Is(err, ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected exactly MaxRetries=3 attempts, got %d", got)
	}

	// Последняя причина сохраняется в тексте ошибки
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error should carry the last observed cause, got %q", err)
	}
}

func TestDestinationClient_TransportErrorRetries(t *testing.T) {
	// Закрытый сервер — ошибка соединения на каждой попытке
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	start := time.Now()
	c := NewDestinationClient(Config{MaxRetries: 2, BackoffBase: 10 * time.Millisecond})
	err := c.Deliver(context.Background(), &domain.Endpoint{URL: url}, nil)

	if !errors.Is(err, ErrDelivery) {
		t.Fatalf("expected ErrDelivery, got %v", err)
	}
	// Одно backoff-ожидание между двумя попытками
	if time.Since(start) < 10*time.Millisecond {
		t.Error("expected a backoff wait between attempts")
	}
}
