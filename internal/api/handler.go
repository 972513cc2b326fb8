package api

import (
	"log/slog"

	"github.com/shaiso/Relay/internal/mq"
	"github.com/shaiso/Relay/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	configRepo   *repo.ConfigRepo
	scheduleRepo *repo.ScheduleRepo
	publisher    *mq.Publisher
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	ConfigRepo   *repo.ConfigRepo
	ScheduleRepo *repo.ScheduleRepo
	Publisher    *mq.Publisher
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		configRepo:   cfg.ConfigRepo,
		scheduleRepo: cfg.ScheduleRepo,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
	}
}
