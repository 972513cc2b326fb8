package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/Relay/internal/domain"
)

// --- фейковые порты ---

type fakeSource struct {
	resp *domain.Response
	err  error
}

func (f *fakeSource) Fetch(_ context.Context, _ *domain.Endpoint) (*domain.Response, error) {
	return f.resp, f.err
}

type fakeEngine struct {
	result map[string]any
	err    error
}

func (f *fakeEngine) Transform(_ context.Context, _ map[string]any, _ []domain.Rule) (map[string]any, error) {
	return f.result, f.err
}

type fakeDestination struct {
	err   error
	calls int
	got   map[string]any
}

func (f *fakeDestination) Deliver(_ context.Context, _ *domain.Endpoint, data map[string]any) error {
	f.calls++
	f.got = data
	return f.err
}

// --- FetchUseCase ---

func TestFetchUseCase_Success(t *testing.T) {
	source := &fakeSource{resp: &domain.Response{StatusCode: 200, Data: map[string]any{"users": []any{}}}}
	uc := NewFetchUseCase(source)
	job := domain.NewJob("acme", "daily")

	resp, err := uc.Execute(context.Background(), job, &domain.Endpoint{URL: "https://src"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobStatusFetching {
		t.Errorf("expected FETCHING, got %s", job.Status)
	}
	if resp.StatusCode != 200 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestFetchUseCase_FailureRecordsAndPropagates(t *testing.T) {
	cause := errors.New("connection refused")
	uc := NewFetchUseCase(&fakeSource{err: cause})
	job := domain.NewJob("acme", "daily")

	_, err := uc.Execute(context.Background(), job, &domain.Endpoint{URL: "https://src"})
	if !errors.Is(err, cause) {
		t.Fatalf("original error must propagate unchanged, got %v", err)
	}
	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to fetch source data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
	if job.CompletedAt == nil {
		t.Error("CompletedAt should be set on failure")
	}
}

func TestFetchUseCase_InvalidTransition(t *testing.T) {
	uc := NewFetchUseCase(&fakeSource{resp: &domain.Response{}})
	job := domain.NewJob("acme", "daily")
	job.Status = domain.JobStatusDelivering

	_, err := uc.Execute(context.Background(), job, &domain.Endpoint{URL: "https://src"})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	// Невалидный переход не помечает job как FAILED
	if job.Status != domain.JobStatusDelivering {
		t.Errorf("status should be unchanged, got %s", job.Status)
	}
}

// --- TransformUseCase ---

func TestTransformUseCase_Success(t *testing.T) {
	uc := NewTransformUseCase(&fakeEngine{result: map[string]any{"customers": []any{}}})
	job := domain.NewJob("acme", "daily")
	job.Status = domain.JobStatusFetching

	out, err := uc.Execute(context.Background(), job, map[string]any{"users": []any{}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobStatusTransforming {
		t.Errorf("expected TRANSFORMING, got %s", job.Status)
	}
	if _, ok := out["customers"]; !ok {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestTransformUseCase_FailureRecordsAndPropagates(t *testing.T) {
	cause := errors.New("unknown transformation operation: frobnicate")
	uc := NewTransformUseCase(&fakeEngine{err: cause})
	job := domain.NewJob("acme", "daily")
	job.Status = domain.JobStatusFetching

	_, err := uc.Execute(context.Background(), job, map[string]any{}, nil)
	if !errors.Is(err, cause) {
		t.Fatalf("original error must propagate unchanged, got %v", err)
	}
	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to transform data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
}

// --- DeliverUseCase ---

func TestDeliverUseCase_SuccessCompletesJob(t *testing.T) {
	dest := &fakeDestination{}
	uc := NewDeliverUseCase(dest)
	job := domain.NewJob("acme", "daily")
	job.Status = domain.JobStatusTransforming

	data := map[string]any{"customers": []any{"a"}}
	if err := uc.Execute(context.Background(), job, &domain.Endpoint{URL: "https://dst"}, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", job.Status)
	}
	if job.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
	if job.ErrorMessage != "" {
		t.Errorf("ErrorMessage should be empty, got %q", job.ErrorMessage)
	}
	if dest.calls != 1 {
		t.Errorf("expected one delivery, got %d", dest.calls)
	}
}

func TestDeliverUseCase_FailureRecordsAndPropagates(t *testing.T) {
	cause := errors.New("HTTP 502")
	uc := NewDeliverUseCase(&fakeDestination{err: cause})
	job := domain.NewJob("acme", "daily")
	job.Status = domain.JobStatusTransforming

	err := uc.Execute(context.Background(), job, &domain.Endpoint{URL: "https://dst"}, nil)
	if !errors.Is(err, cause) {
		t.Fatalf("original error must propagate unchanged, got %v", err)
	}
	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to deliver data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
}

// --- сквозной сценарий ---

func TestPipeline_EndToEnd(t *testing.T) {
	source := &fakeSource{resp: &domain.Response{
		StatusCode: 200,
		Data:       map[string]any{"users": []any{map[string]any{"id": 1}}},
	}}
	engine := &fakeEngine{result: map[string]any{"customers": []any{map[string]any{"id": 1}}}}
	dest := &fakeDestination{}

	fetch := NewFetchUseCase(source)
	transformUC := NewTransformUseCase(engine)
	deliver := NewDeliverUseCase(dest)

	job := domain.NewJob("acme", "daily")
	ctx := context.Background()

	resp, err := fetch.Execute(ctx, job, &domain.Endpoint{URL: "https://src"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := transformUC.Execute(ctx, job, resp.Data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := deliver.Execute(ctx, job, &domain.Endpoint{URL: "https://dst"}, data); err != nil {
		t.Fatal(err)
	}

	if job.Status != domain.JobStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", job.Status)
	}
	if job.CompletedAt == nil || job.ErrorMessage != "" {
		t.Errorf("terminal record inconsistent: completed_at=%v error=%q", job.CompletedAt, job.ErrorMessage)
	}
	if _, ok := dest.got["customers"]; !ok {
		t.Errorf("destination should get transformed document, got %v", dest.got)
	}
}

func TestPipeline_DeliverFailureEndsFailed(t *testing.T) {
	source := &fakeSource{resp: &domain.Response{StatusCode: 200, Data: map[string]any{"users": []any{}}}}
	engine := &fakeEngine{result: map[string]any{"customers": []any{}}}
	cause := errors.New("delivery failed: HTTP 503")
	dest := &fakeDestination{err: cause}

	job := domain.NewJob("acme", "daily")
	ctx := context.Background()

	resp, err := NewFetchUseCase(source).Execute(ctx, job, &domain.Endpoint{URL: "https://src"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := NewTransformUseCase(engine).Execute(ctx, job, resp.Data, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = NewDeliverUseCase(dest).Execute(ctx, job, &domain.Endpoint{URL: "https://dst"}, data)
	if !errors.Is(err, cause) {
		t.Fatalf("underlying error must reach the caller, got %v", err)
	}
	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to deliver data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
}
