package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Relay/internal/domain"
	"github.com/shaiso/Relay/internal/repo"
)

// Job DTOs

// TriggerJobRequest — запрос на запуск синхронизации.
type TriggerJobRequest struct {
	CustomerID string `json:"customer_id"`
	ConfigName string `json:"config_name"`
}

// JobResponse — ответ с job.
type JobResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customer_id"`
	ConfigName string    `json:"config_name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// JobFromDomain конвертирует domain.Job в JobResponse.
func JobFromDomain(j *domain.Job) JobResponse {
	return JobResponse{
		ID:         j.ID,
		CustomerID: j.CustomerID,
		ConfigName: j.ConfigName,
		Status:     string(j.Status),
		CreatedAt:  j.CreatedAt,
	}
}

// Config DTOs

// PutConfigRequest — запрос на создание/обновление конфигурации.
type PutConfigRequest struct {
	Spec domain.SyncSpec `json:"spec"`
}

// ConfigResponse — ответ с конфигурацией.
type ConfigResponse struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Spec       domain.SyncSpec `json:"spec"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ConfigFromStored конвертирует repo.StoredConfig в ConfigResponse.
func ConfigFromStored(c *repo.StoredConfig) ConfigResponse {
	return ConfigResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Spec:       c.Spec,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// Schedule DTOs

// CreateScheduleRequest — запрос на создание schedule.
type CreateScheduleRequest struct {
	CustomerID  string `json:"customer_id"`
	ConfigName  string `json:"config_name"`
	CronExpr    string `json:"cron_expr,omitempty"`
	IntervalSec int    `json:"interval_sec,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// UpdateScheduleRequest — запрос на обновление schedule.
type UpdateScheduleRequest struct {
	CronExpr    *string `json:"cron_expr,omitempty"`
	IntervalSec *int    `json:"interval_sec,omitempty"`
	Timezone    *string `json:"timezone,omitempty"`
}

// SetEnabledRequest — запрос на включение/выключение.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// ScheduleResponse — ответ с schedule.
type ScheduleResponse struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  string     `json:"customer_id"`
	ConfigName  string     `json:"config_name"`
	CronExpr    string     `json:"cron_expr,omitempty"`
	IntervalSec int        `json:"interval_sec,omitempty"`
	Timezone    string     `json:"timezone"`
	Enabled     bool       `json:"enabled"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
	LastJobAt   *time.Time `json:"last_job_at,omitempty"`
	LastJobID   *uuid.UUID `json:"last_job_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ScheduleFromDomain конвертирует domain.Schedule в ScheduleResponse.
func ScheduleFromDomain(s *domain.Schedule) ScheduleResponse {
	if s == nil {
		return ScheduleResponse{}
	}
	return ScheduleResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		ConfigName:  s.ConfigName,
		CronExpr:    s.CronExpr,
		IntervalSec: s.IntervalSec,
		Timezone:    s.Timezone,
		Enabled:     s.Enabled,
		NextDueAt:   s.NextDueAt,
		LastJobAt:   s.LastJobAt,
		LastJobID:   s.LastJobID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
