package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Relay/internal/domain"
	"github.com/shaiso/Relay/internal/mq"
	"github.com/shaiso/Relay/internal/repo"
)

// Scheduler — планировщик, обрабатывающий due schedules.
type Scheduler struct {
	scheduleRepo *repo.ScheduleRepo
	configRepo   *repo.ConfigRepo
	publisher    *mq.Publisher
	logger       *slog.Logger
	batchSize    int
}

// Config — конфигурация Scheduler.
type Config struct {
	ScheduleRepo *repo.ScheduleRepo
	ConfigRepo   *repo.ConfigRepo
	Publisher    *mq.Publisher
	Logger       *slog.Logger
	BatchSize    int // количество schedules за один тик (default: 100)
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &Scheduler{
		scheduleRepo: cfg.ScheduleRepo,
		configRepo:   cfg.ConfigRepo,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
		batchSize:    batchSize,
	}
}

// Tick выполняет один тик планировщика.
//
// 1. Находит due schedules (enabled=true, next_due_at <= now)
// 2. Для каждого schedule публикует job.requested
// 3. Обновляет next_due_at
//
// Ошибки одного schedule не блокируют обработку остальных.
func (s *Scheduler) Tick(ctx context.Context) error {
	now := time.Now()

	schedules, err := s.scheduleRepo.ListDue(ctx, now, s.batchSize)
	if err != nil {
		return fmt.Errorf("list due schedules: %w", err)
	}

	if len(schedules) == 0 {
		return nil
	}

	s.logger.Debug("found due schedules", "count", len(schedules))

	var processed, requested int
	for i := range schedules {
		sched := &schedules[i]

		jobRequested, err := s.processSchedule(ctx, sched, now)
		if err != nil {
			s.logger.Error("failed to process schedule",
				"schedule_id", sched.ID,
				"customer_id", sched.CustomerID,
				"config_name", sched.ConfigName,
				"error", err,
			)
			// Продолжаем обработку остальных
			continue
		}

		processed++
		if jobRequested {
			requested++
		}
	}

	s.logger.Info("scheduler tick completed",
		"due", len(schedules),
		"processed", processed,
		"jobs_requested", requested,
	)

	return nil
}

// processSchedule обрабатывает один schedule.
// Возвращает true, если job.requested был опубликован.
func (s *Scheduler) processSchedule(ctx context.Context, sched *domain.Schedule, now time.Time) (bool, error) {
	// 1. Проверяем, что конфигурация существует
	if _, err := s.configRepo.Get(ctx, sched.CustomerID, sched.ConfigName); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("config not found for schedule, skipping",
				"schedule_id", sched.ID,
				"customer_id", sched.CustomerID,
				"config_name", sched.ConfigName,
			)
			// Не возвращаем ошибку — просто пропускаем
			return false, nil
		}
		return false, fmt.Errorf("get config: %w", err)
	}

	// 2. Публикуем job.requested
	jobID := uuid.New()
	if err := s.publisher.PublishJobRequested(ctx, mq.JobRequestedPayload{
		JobID:      jobID,
		CustomerID: sched.CustomerID,
		ConfigName: sched.ConfigName,
	}); err != nil {
		return false, fmt.Errorf("publish job.requested: %w", err)
	}

	s.logger.Info("requested job from schedule",
		"job_id", jobID,
		"schedule_id", sched.ID,
		"customer_id", sched.CustomerID,
		"config_name", sched.ConfigName,
	)

	// 3. Вычисляем следующее время выполнения
	nextDue, err := NextDue(sched, now)
	if err != nil {
		s.logger.Error("failed to calculate next due, leaving schedule as is",
			"schedule_id", sched.ID,
			"error", err,
		)
		// Schedule некорректный — лучше не трогать next_due_at
		return true, nil
	}

	// 4. Обновляем schedule
	sched.RecordJob(jobID, nextDue)
	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		return true, fmt.Errorf("update schedule: %w", err)
	}

	return true, nil
}
