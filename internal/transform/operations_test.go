package transform

import (
	"errors"
	"testing"
)

func TestOpConcatenate(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		params map[string]any
		want   string
	}{
		{
			name:   "two fields with space",
			value:  map[string]any{"first": "John", "last": "Doe"},
			params: map[string]any{"fields": []any{"first", "last"}, "separator": " "},
			want:   "John Doe",
		},
		{
			name:   "missing field becomes empty string",
			value:  map[string]any{"first": "John"},
			params: map[string]any{"fields": []any{"first", "missing"}, "separator": " "},
			want:   "John ",
		},
		{
			name:   "default separator is a single space",
			value:  map[string]any{"a": "x", "b": "y"},
			params: map[string]any{"fields": []any{"a", "b"}},
			want:   "x y",
		},
		{
			name:   "custom separator",
			value:  map[string]any{"a": "x", "b": "y"},
			params: map[string]any{"fields": []any{"a", "b"}, "separator": ", "},
			want:   "x, y",
		},
		{
			name:   "non-mapping value is stringified",
			value:  42,
			params: map[string]any{"fields": []any{"a"}},
			want:   "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := opConcatenate(tt.value, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOpDefaultValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"nil gets default", nil, "x"},
		{"empty string gets default", "", "x"},
		{"non-empty value passes through", "y", "y"},
		{"zero is not absent", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := opDefaultValue(tt.value, map[string]any{"default": "x"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOpCaseFolding(t *testing.T) {
	got, err := opUppercase("hello", nil)
	if err != nil || got != "HELLO" {
		t.Errorf("uppercase: expected HELLO, got %v (%v)", got, err)
	}

	got, err = opLowercase("HeLLo", nil)
	if err != nil || got != "hello" {
		t.Errorf("lowercase: expected hello, got %v (%v)", got, err)
	}

	// Отсутствующее значение — пустая строка
	got, err = opUppercase(nil, nil)
	if err != nil || got != "" {
		t.Errorf("uppercase(nil): expected empty string, got %q (%v)", got, err)
	}

	// Не-строки приводятся к строке
	got, err = opUppercase(true, nil)
	if err != nil || got != "TRUE" {
		t.Errorf("uppercase(true): expected TRUE, got %v (%v)", got, err)
	}
}

func TestOpFormatDate(t *testing.T) {
	got, err := opFormatDate("2024-01-15", map[string]any{
		"input_format":  "%Y-%m-%d",
		"output_format": "%d/%m/%Y",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "15/01/2024" {
		t.Errorf("expected 15/01/2024, got %v", got)
	}
}

func TestOpFormatDate_Defaults(t *testing.T) {
	got, err := opFormatDate("2023-12-31", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "31/12/2023" {
		t.Errorf("expected 31/12/2023, got %v", got)
	}
}

func TestOpFormatDate_EmptyInput(t *testing.T) {
	got, err := opFormatDate("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("empty input should yield empty string, got %q", got)
	}

	got, err = opFormatDate(nil, nil)
	if err != nil || got != "" {
		t.Errorf("nil input should yield empty string, got %q (%v)", got, err)
	}
}

func TestOpFormatDate_MalformedInput(t *testing.T) {
	if _, err := opFormatDate("not-a-date", nil); err == nil {
		t.Error("malformed date should be a hard parse error")
	}
}

func TestStrftimeToLayout(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"%Y-%m-%d", "2006-01-02"},
		{"%d/%m/%Y", "02/01/2006"},
		{"%Y-%m-%d %H:%M:%S", "2006-01-02 15:04:05"},
		{"%d %b %Y", "02 Jan 2006"},
		{"100%%", "100%"},
	}

	for _, tt := range tests {
		got, err := strftimeToLayout(tt.format)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.format, tt.want, got)
		}
	}
}

func TestStrftimeToLayout_UnknownDirective(t *testing.T) {
	if _, err := strftimeToLayout("%Q"); !errors.Is(err, ErrBadDateFormat) {
		t.Errorf("expected ErrBadDateFormat, got %v", err)
	}
	if _, err := strftimeToLayout("trailing %"); !errors.Is(err, ErrBadDateFormat) {
		t.Errorf("expected ErrBadDateFormat for trailing %%, got %v", err)
	}
}
