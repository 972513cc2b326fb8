package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shaiso/Relay/internal/domain"
	"github.com/shaiso/Relay/internal/mq"
	"github.com/shaiso/Relay/internal/pipeline"
)

// Default configuration values.
const (
	defaultPrefetch = 5
)

// ConfigSource — источник конфигураций синхронизации.
//
// Реализации: repo.ConfigRepo (БД) и config.FileLoader (файлы).
type ConfigSource interface {
	Load(ctx context.Context, customerID, configName string) (*domain.SyncSpec, error)
}

// Runner выполняет jobs синхронизации.
//
// Runner — stateless компонент системы, который:
//   - Получает jobs из очереди RabbitMQ (event-driven)
//   - Загружает конфигурацию синхронизации по customer + config-name
//   - Прогоняет pipeline: fetch → transform → deliver
//   - Публикует результат в очередь jobs.completed
type Runner struct {
	configs ConfigSource

	fetch     *pipeline.FetchUseCase
	transform *pipeline.TransformUseCase
	deliver   *pipeline.DeliverUseCase

	// MQ
	publisher *mq.Publisher
	conn      *mq.Connection
	consumer  *mq.Consumer[mq.JobRequestedPayload]

	// Configuration
	prefetch int

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

// Config — конфигурация Runner.
type Config struct {
	// Configs — источник конфигураций синхронизации.
	Configs ConfigSource

	// Pipeline ports
	Source      pipeline.SourcePort
	Engine      pipeline.TransformPort
	Destination pipeline.DestinationPort

	// MQ
	Publisher *mq.Publisher
	Conn      *mq.Connection

	// Prefetch — предел параллельно выполняемых jobs (default: 5).
	Prefetch int

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Runner.
func New(cfg Config) *Runner {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		configs:   cfg.Configs,
		fetch:     pipeline.NewFetchUseCase(cfg.Source),
		transform: pipeline.NewTransformUseCase(cfg.Engine),
		deliver:   pipeline.NewDeliverUseCase(cfg.Destination),
		publisher: cfg.Publisher,
		conn:      cfg.Conn,
		prefetch:  prefetch,
		logger:    logger,
	}
}

// Start запускает Runner.
func (r *Runner) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancelFunc = cancel

	r.logger.Info("starting runner", "prefetch", r.prefetch)

	r.consumer = mq.NewConsumer(r.conn, r.logger, mq.ConsumerConfig[mq.JobRequestedPayload]{
		Queue:       mq.QueueJobsRequested,
		Type:        mq.MessageTypeJobRequested,
		Handler:     r.handleJobRequested,
		Parallelism: r.prefetch,
	})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("job consumer error", "error", err)
		}
	}()

	r.logger.Info("runner started")
	return nil
}

// Stop останавливает Runner.
func (r *Runner) Stop() {
	r.stoppedMu.Lock()
	r.stopped = true
	r.stoppedMu.Unlock()

	r.logger.Info("stopping runner...")

	if r.cancelFunc != nil {
		r.cancelFunc()
	}

	if r.consumer != nil {
		r.consumer.Stop()
	}

	r.wg.Wait()

	r.logger.Info("runner stopped")
}

// IsStopped проверяет, остановлен ли Runner.
func (r *Runner) IsStopped() bool {
	r.stoppedMu.RLock()
	defer r.stoppedMu.RUnlock()
	return r.stopped
}
