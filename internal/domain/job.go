package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job — один прогон пайплайна fetch → transform → deliver
// для пары customer + config.
//
// Job создаётся когда:
// - Пользователь запускает синхронизацию вручную (через API/CLI)
// - Scheduler создаёт job по расписанию
//
// Job живёт в памяти одного runner'а от создания до финального статуса;
// история jobs не персистится. Job мутируется ровно одним потоком —
// тем use case, который его сейчас обрабатывает.
type Job struct {
	// ID — уникальный идентификатор job.
	ID uuid.UUID `json:"id"`

	// CustomerID — идентификатор customer, для которого выполняется синхронизация.
	CustomerID string `json:"customer_id"`

	// ConfigName — имя конфигурации синхронизации у этого customer.
	ConfigName string `json:"config_name"`

	// Status — текущий статус выполнения.
	Status JobStatus `json:"status"`

	// CreatedAt — время создания job.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt — время завершения (успешного или с ошибкой).
	// Nil, пока job не достиг финального статуса.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// ErrorMessage — текст ошибки, если job завершился с FAILED.
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewJob создаёт новый job в статусе PENDING.
func NewJob(customerID, configName string) *Job {
	return &Job{
		ID:         uuid.New(),
		CustomerID: customerID,
		ConfigName: configName,
		Status:     JobStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

// MarkFetching переводит job в статус FETCHING.
// Допустим только из PENDING; иначе статус не меняется.
func (j *Job) MarkFetching() error {
	if j.Status != JobStatusPending {
		return fmt.Errorf("%w: cannot fetch from %s", ErrInvalidTransition, j.Status)
	}
	j.Status = JobStatusFetching
	return nil
}

// MarkTransforming переводит job в статус TRANSFORMING.
// Допустим только из FETCHING.
func (j *Job) MarkTransforming() error {
	if j.Status != JobStatusFetching {
		return fmt.Errorf("%w: cannot transform from %s", ErrInvalidTransition, j.Status)
	}
	j.Status = JobStatusTransforming
	return nil
}

// MarkDelivering переводит job в статус DELIVERING.
// Допустим только из TRANSFORMING.
func (j *Job) MarkDelivering() error {
	if j.Status != JobStatusTransforming {
		return fmt.Errorf("%w: cannot deliver from %s", ErrInvalidTransition, j.Status)
	}
	j.Status = JobStatusDelivering
	return nil
}

// MarkCompleted переводит job в статус COMPLETED.
// Допустим из любого статуса; устанавливает CompletedAt.
func (j *Job) MarkCompleted() {
	now := time.Now().UTC()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
}

// MarkFailed переводит job в статус FAILED с текстом ошибки.
// Допустим из любого статуса; устанавливает CompletedAt.
func (j *Job) MarkFailed(errMsg string) {
	now := time.Now().UTC()
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.CompletedAt = &now
}

// IsFinished возвращает true, если job завершён (в любом статусе).
func (j *Job) IsFinished() bool {
	return j.Status.IsTerminal()
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если job ещё не завершён.
func (j *Job) Duration() time.Duration {
	if j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(j.CreatedAt)
}
