package runner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Relay/internal/config"
	"github.com/shaiso/Relay/internal/domain"
	"github.com/shaiso/Relay/internal/mq"
)

// --- Fakes ---

type fakeSource struct {
	resp *domain.Response
	err  error
}

func (f *fakeSource) Fetch(_ context.Context, _ *domain.Endpoint) (*domain.Response, error) {
	return f.resp, f.err
}

type fakeEngine struct {
	out map[string]any
	err error
}

func (f *fakeEngine) Transform(_ context.Context, _ map[string]any, _ []domain.Rule) (map[string]any, error) {
	return f.out, f.err
}

type fakeDestination struct {
	err   error
	got   map[string]any
	calls int
}

func (f *fakeDestination) Deliver(_ context.Context, _ *domain.Endpoint, data map[string]any) error {
	f.calls++
	f.got = data
	return f.err
}

type fakeConfigSource struct {
	spec *domain.SyncSpec
	err  error
}

func (f *fakeConfigSource) Load(_ context.Context, _, _ string) (*domain.SyncSpec, error) {
	return f.spec, f.err
}

func testSpec() *domain.SyncSpec {
	return &domain.SyncSpec{
		Source:      domain.Endpoint{URL: "http://source.local/api"},
		Destination: domain.Endpoint{URL: "http://dest.local/api"},
		Rules: []domain.Rule{
			{TargetField: "name", SourceField: "user.name"},
		},
	}
}

func newTestRunner(src *fakeSource, eng *fakeEngine, dst *fakeDestination, cfgs ConfigSource) *Runner {
	return New(Config{
		Configs:     cfgs,
		Source:      src,
		Engine:      eng,
		Destination: dst,
		Logger:      slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	})
}

// --- RunJob ---

func TestRunJob_Success(t *testing.T) {
	src := &fakeSource{resp: &domain.Response{StatusCode: 200, Data: map[string]any{"user": map[string]any{"name": "Alice"}}}}
	eng := &fakeEngine{out: map[string]any{"name": "Alice"}}
	dst := &fakeDestination{}

	r := newTestRunner(src, eng, dst, nil)
	job := domain.NewJob("acme", "users-sync")

	if err := r.RunJob(context.Background(), job, testSpec()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.Status != domain.JobStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", job.Status)
	}
	if dst.calls != 1 {
		t.Errorf("expected 1 deliver call, got %d", dst.calls)
	}
	if dst.got["name"] != "Alice" {
		t.Errorf("destination should receive transformed data, got %v", dst.got)
	}
	if job.CompletedAt == nil {
		t.Error("CompletedAt should be set")
	}
}

func TestRunJob_FetchFailure_StopsPipeline(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	eng := &fakeEngine{out: map[string]any{}}
	dst := &fakeDestination{}

	r := newTestRunner(src, eng, dst, nil)
	job := domain.NewJob("acme", "users-sync")

	err := r.RunJob(context.Background(), job, testSpec())
	if err == nil {
		t.Fatal("expected error")
	}

	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to fetch source data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
	if dst.calls != 0 {
		t.Errorf("deliver should not be called, got %d calls", dst.calls)
	}
}

func TestRunJob_TransformFailure_StopsPipeline(t *testing.T) {
	src := &fakeSource{resp: &domain.Response{StatusCode: 200, Data: map[string]any{}}}
	eng := &fakeEngine{err: errors.New("unknown operation 'reverse'")}
	dst := &fakeDestination{}

	r := newTestRunner(src, eng, dst, nil)
	job := domain.NewJob("acme", "users-sync")

	if err := r.RunJob(context.Background(), job, testSpec()); err == nil {
		t.Fatal("expected error")
	}

	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to transform data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
	if dst.calls != 0 {
		t.Errorf("deliver should not be called, got %d calls", dst.calls)
	}
}

func TestRunJob_DeliverFailure(t *testing.T) {
	src := &fakeSource{resp: &domain.Response{StatusCode: 200, Data: map[string]any{}}}
	eng := &fakeEngine{out: map[string]any{"x": 1}}
	dst := &fakeDestination{err: errors.New("HTTP 502")}

	r := newTestRunner(src, eng, dst, nil)
	job := domain.NewJob("acme", "users-sync")

	if err := r.RunJob(context.Background(), job, testSpec()); err == nil {
		t.Fatal("expected error")
	}

	if job.Status != domain.JobStatusFailed {
		t.Errorf("expected FAILED, got %s", job.Status)
	}
	if !strings.HasPrefix(job.ErrorMessage, "Failed to deliver data: ") {
		t.Errorf("unexpected error message: %q", job.ErrorMessage)
	}
}

// --- handleJobRequested ---

func requestedMessage(payload mq.JobRequestedPayload) *mq.Message {
	return &mq.Message{
		ID:        uuid.NewString(),
		Type:      mq.MessageTypeJobRequested,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

func TestJobFromPayload(t *testing.T) {
	payload := mq.JobRequestedPayload{
		JobID:      uuid.New(),
		CustomerID: "acme",
		ConfigName: "users-sync",
	}

	job := jobFromPayload(payload)

	if job.ID != payload.JobID {
		t.Errorf("expected job ID %s, got %s", payload.JobID, job.ID)
	}
	if job.Status != domain.JobStatusPending {
		t.Errorf("expected PENDING, got %s", job.Status)
	}
	// CreatedAt должен жить в UTC, как и timestamps из Mark*
	if job.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt should be UTC, got %s", job.CreatedAt.Location())
	}
}

func TestHandleJobRequested_Success(t *testing.T) {
	src := &fakeSource{resp: &domain.Response{StatusCode: 200, Data: map[string]any{"user": map[string]any{"name": "Alice"}}}}
	eng := &fakeEngine{out: map[string]any{"name": "Alice"}}
	dst := &fakeDestination{}
	cfgs := &fakeConfigSource{spec: testSpec()}

	r := newTestRunner(src, eng, dst, cfgs)

	payload := mq.JobRequestedPayload{
		JobID:      uuid.New(),
		CustomerID: "acme",
		ConfigName: "users-sync",
	}

	if err := r.handleJobRequested(context.Background(), requestedMessage(payload), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.calls != 1 {
		t.Errorf("expected 1 deliver call, got %d", dst.calls)
	}
}

func TestHandleJobRequested_ConfigNotFound_Acks(t *testing.T) {
	cfgs := &fakeConfigSource{err: config.ErrNotFound}
	dst := &fakeDestination{}

	r := newTestRunner(&fakeSource{}, &fakeEngine{}, dst, cfgs)

	payload := mq.JobRequestedPayload{
		JobID:      uuid.New(),
		CustomerID: "acme",
		ConfigName: "missing",
	}

	// Постоянная ошибка — сообщение не должно уходить в requeue
	if err := r.handleJobRequested(context.Background(), requestedMessage(payload), payload); err != nil {
		t.Fatalf("expected nil for permanent config error, got %v", err)
	}
	if dst.calls != 0 {
		t.Errorf("pipeline should not run without config, got %d deliver calls", dst.calls)
	}
}

func TestHandleJobRequested_TransientConfigError_Requeues(t *testing.T) {
	cfgs := &fakeConfigSource{err: errors.New("connection reset")}

	r := newTestRunner(&fakeSource{}, &fakeEngine{}, &fakeDestination{}, cfgs)

	payload := mq.JobRequestedPayload{
		JobID:      uuid.New(),
		CustomerID: "acme",
		ConfigName: "users-sync",
	}

	if err := r.handleJobRequested(context.Background(), requestedMessage(payload), payload); err == nil {
		t.Fatal("expected error for transient config failure")
	}
}
