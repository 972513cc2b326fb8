package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shaiso/Relay/internal/config"
	"github.com/shaiso/Relay/internal/domain"
	"github.com/shaiso/Relay/internal/mq"
	"github.com/shaiso/Relay/internal/repo"
	"github.com/shaiso/Relay/internal/telemetry"
)

// handleJobRequested обрабатывает событие job.requested из очереди.
func (r *Runner) handleJobRequested(ctx context.Context, _ *mq.Message, payload mq.JobRequestedPayload) error {
	logger := r.logger.With(
		"job_id", payload.JobID,
		"customer_id", payload.CustomerID,
		"config_name", payload.ConfigName,
	)

	logger.Debug("received job.requested event")

	job := jobFromPayload(payload)

	// Загружаем конфигурацию синхронизации
	spec, err := r.configs.Load(ctx, payload.CustomerID, payload.ConfigName)
	if err != nil {
		// Отсутствующий или невалидный конфиг — постоянная ошибка,
		// requeue не поможет
		if errors.Is(err, config.ErrNotFound) || errors.Is(err, config.ErrInvalid) || errors.Is(err, repo.ErrNotFound) {
			logger.Warn("config unavailable, failing job", "error", err)
			job.MarkFailed(fmt.Sprintf("config %q for customer %q: %v", payload.ConfigName, payload.CustomerID, err))
			r.publishCompletion(ctx, job)
			return nil
		}
		logger.Error("failed to load config", "error", err)
		return err
	}

	logger.Info("job started")

	if err := r.RunJob(ctx, job, spec); err != nil {
		logger.Warn("job failed",
			"status", job.Status,
			"error", job.ErrorMessage,
		)
	} else {
		logger.Info("job completed", "duration", job.Duration())
	}

	// Job терминален в обоих случаях — сообщение подтверждаем,
	// retry сетевых стадий уже отработал внутри pipeline
	r.publishCompletion(ctx, job)
	return nil
}

// jobFromPayload восстанавливает in-memory job из события job.requested.
// Job не персистится, поэтому CreatedAt — момент начала обработки.
// Все timestamps job'а живут в UTC.
func jobFromPayload(payload mq.JobRequestedPayload) *domain.Job {
	return &domain.Job{
		ID:         payload.JobID,
		CustomerID: payload.CustomerID,
		ConfigName: payload.ConfigName,
		Status:     domain.JobStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

// RunJob прогоняет job через pipeline: fetch → transform → deliver.
//
// Останавливается на первой ошибке стадии; job к этому моменту уже
// помечен FAILED соответствующим use case'ом.
func (r *Runner) RunJob(ctx context.Context, job *domain.Job, spec *domain.SyncSpec) error {
	telemetry.JobsInFlight.Inc()
	defer telemetry.JobsInFlight.Dec()
	defer func() {
		telemetry.JobsTotal.WithLabelValues(string(job.Status)).Inc()
	}()

	// Fetch
	start := time.Now()
	resp, err := r.fetch.Execute(ctx, job, &spec.Source)
	telemetry.StageDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.StageFailures.WithLabelValues("fetch").Inc()
		return err
	}

	// Transform
	start = time.Now()
	transformed, err := r.transform.Execute(ctx, job, resp.Data, spec.Rules)
	telemetry.StageDuration.WithLabelValues("transform").Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.StageFailures.WithLabelValues("transform").Inc()
		return err
	}

	// Deliver
	start = time.Now()
	err = r.deliver.Execute(ctx, job, &spec.Destination, transformed)
	telemetry.StageDuration.WithLabelValues("deliver").Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.StageFailures.WithLabelValues("deliver").Inc()
		return err
	}

	return nil
}

// publishCompletion публикует событие job.completed.
func (r *Runner) publishCompletion(ctx context.Context, job *domain.Job) {
	if r.publisher == nil {
		r.logger.Warn("publisher not available, skipping job.completed publish",
			"job_id", job.ID,
		)
		return
	}

	payload := mq.JobCompletedPayload{
		JobID:      job.ID,
		CustomerID: job.CustomerID,
		ConfigName: job.ConfigName,
		Status:     string(job.Status),
		Error:      job.ErrorMessage,
		DurationMS: job.Duration().Milliseconds(),
	}

	if err := r.publisher.PublishJobCompleted(ctx, payload); err != nil {
		// Не возвращаем ошибку — job уже terminal, потеря события
		// не должна приводить к повторному выполнению
		r.logger.Warn("failed to publish job.completed",
			"job_id", job.ID,
			"error", err,
		)
	}
}
