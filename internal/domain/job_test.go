package domain

import (
	"errors"
	"testing"
)

func TestJob_HappyPathTransitions(t *testing.T) {
	job := NewJob("acme", "daily-sync")

	if job.Status != JobStatusPending {
		t.Fatalf("new job should be PENDING, got %s", job.Status)
	}
	if job.ID.String() == "" {
		t.Fatal("job should get an ID on creation")
	}

	if err := job.MarkFetching(); err != nil {
		t.Fatalf("MarkFetching from PENDING: %v", err)
	}
	if job.Status != JobStatusFetching {
		t.Errorf("expected FETCHING, got %s", job.Status)
	}

	if err := job.MarkTransforming(); err != nil {
		t.Fatalf("MarkTransforming from FETCHING: %v", err)
	}
	if job.Status != JobStatusTransforming {
		t.Errorf("expected TRANSFORMING, got %s", job.Status)
	}

	if err := job.MarkDelivering(); err != nil {
		t.Fatalf("MarkDelivering from TRANSFORMING: %v", err)
	}
	if job.Status != JobStatusDelivering {
		t.Errorf("expected DELIVERING, got %s", job.Status)
	}

	job.MarkCompleted()
	if job.Status != JobStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", job.Status)
	}
	if job.CompletedAt == nil {
		t.Error("CompletedAt should be set after MarkCompleted")
	}
	if job.ErrorMessage != "" {
		t.Errorf("ErrorMessage should be empty on success, got %q", job.ErrorMessage)
	}
}

func TestJob_InvalidTransitionsLeaveStatusUnchanged(t *testing.T) {
	tests := []struct {
		name string
		from JobStatus
		call func(j *Job) error
	}{
		{"fetch from FETCHING", JobStatusFetching, (*Job).MarkFetching},
		{"fetch from COMPLETED", JobStatusCompleted, (*Job).MarkFetching},
		{"transform from PENDING", JobStatusPending, (*Job).MarkTransforming},
		{"transform from DELIVERING", JobStatusDelivering, (*Job).MarkTransforming},
		{"deliver from PENDING", JobStatusPending, (*Job).MarkDelivering},
		{"deliver from FETCHING", JobStatusFetching, (*Job).MarkDelivering},
		{"deliver from FAILED", JobStatusFailed, (*Job).MarkDelivering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewJob("acme", "daily-sync")
			job.Status = tt.from

			err := tt.call(job)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if job.Status != tt.from {
				t.Errorf("status changed on invalid transition: %s → %s", tt.from, job.Status)
			}
		})
	}
}

func TestJob_MarkFailed(t *testing.T) {
	job := NewJob("acme", "daily-sync")
	if err := job.MarkFetching(); err != nil {
		t.Fatal(err)
	}

	job.MarkFailed("Failed to fetch source data: boom")

	if job.Status != JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if job.ErrorMessage != "Failed to fetch source data: boom" {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
	if job.CompletedAt == nil {
		t.Error("CompletedAt should be set after MarkFailed")
	}
	if !job.IsFinished() {
		t.Error("FAILED job should be finished")
	}
}

func TestJob_CompletedAtNeverCleared(t *testing.T) {
	job := NewJob("acme", "daily-sync")

	job.MarkFailed("first failure")
	first := job.CompletedAt
	if first == nil {
		t.Fatal("CompletedAt not set")
	}

	// Повторные финальные переходы не сбрасывают CompletedAt
	job.MarkCompleted()
	if job.CompletedAt == nil {
		t.Fatal("CompletedAt cleared by MarkCompleted")
	}
	if job.CompletedAt.Before(*first) {
		t.Error("CompletedAt moved backwards")
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	for _, s := range []JobStatus{JobStatusPending, JobStatusFetching, JobStatusTransforming, JobStatusDelivering} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []JobStatus{JobStatusCompleted, JobStatusFailed} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestEndpoint_Timeout(t *testing.T) {
	ep := &Endpoint{URL: "https://api.example.com"}
	if got := ep.Timeout().Seconds(); got != 30 {
		t.Errorf("default timeout should be 30s, got %vs", got)
	}

	ep.TimeoutSec = 5
	if got := ep.Timeout().Seconds(); got != 5 {
		t.Errorf("expected 5s, got %vs", got)
	}
}

func TestEndpoint_HTTPMethod(t *testing.T) {
	ep := &Endpoint{URL: "https://api.example.com"}
	method, err := ep.HTTPMethod()
	if err != nil {
		t.Fatal(err)
	}
	if method != "GET" {
		t.Errorf("default method should be GET, got %s", method)
	}

	ep.Method = "PATCH"
	if _, err := ep.HTTPMethod(); !errors.Is(err, ErrUnsupportedMethod) {
		t.Errorf("expected ErrUnsupportedMethod, got %v", err)
	}
}
