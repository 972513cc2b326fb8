package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
source:
  url: https://api.source.com/users
  method: GET
  headers:
    Authorization: Bearer token
  timeout_sec: 10
destination:
  url: https://api.destination.com/customers
  method: POST
rules:
  - target_field: customers
    source_field: users
  - target_field: meta.synced_by
    transform: default_value
    params:
      default: relay
`

func writeConfig(t *testing.T, base, customer, name, content string) {
	t.Helper()
	dir := filepath.Join(base, customer)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileLoader_LoadValidConfig(t *testing.T) {
	base := t.TempDir()
	writeConfig(t, base, "acme", "daily-sync", validConfig)

	loader := NewFileLoader(base)
	spec, err := loader.Load(context.Background(), "acme", "daily-sync")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.Source.URL != "https://api.source.com/users" {
		t.Errorf("unexpected source url: %s", spec.Source.URL)
	}
	if spec.Source.Headers["Authorization"] != "Bearer token" {
		t.Errorf("headers should be loaded, got %v", spec.Source.Headers)
	}
	if spec.Source.TimeoutSec != 10 {
		t.Errorf("expected timeout_sec 10, got %d", spec.Source.TimeoutSec)
	}
	if len(spec.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(spec.Rules))
	}
	if spec.Rules[1].Params["default"] != "relay" {
		t.Errorf("rule params should be loaded, got %v", spec.Rules[1].Params)
	}
}

func TestFileLoader_NotFound(t *testing.T) {
	loader := NewFileLoader(t.TempDir())

	_, err := loader.Load(context.Background(), "acme", "no-such-config")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileLoader_EmptyRules_IsValid(t *testing.T) {
	base := t.TempDir()
	writeConfig(t, base, "acme", "passthrough", `
source:
  url: https://api.source.com/users
destination:
  url: https://api.destination.com/customers
rules: []
`)

	// Пустой список правил — валидная конфигурация:
	// движок построит пустой документ
	spec, err := NewFileLoader(base).Load(context.Background(), "acme", "passthrough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Rules) != 0 {
		t.Errorf("expected no rules, got %d", len(spec.Rules))
	}
}

func TestFileLoader_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing source url",
			content: `
source:
  method: GET
destination:
  url: https://api.destination.com/customers
rules:
  - target_field: out
`,
		},
		{
			name: "bad method",
			content: `
source:
  url: https://api.source.com/users
  method: PATCH
destination:
  url: https://api.destination.com/customers
rules:
  - target_field: out
`,
		},
		{
			name: "rule without target_field",
			content: `
source:
  url: https://api.source.com/users
destination:
  url: https://api.destination.com/customers
rules:
  - source_field: users
`,
		},
		{
			name:    "not yaml at all",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			writeConfig(t, base, "acme", "bad", tt.content)

			_, err := NewFileLoader(base).Load(context.Background(), "acme", "bad")
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
