package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/Relay/internal/domain"
	"github.com/shaiso/Relay/internal/mq"
)

// TriggerJob запускает синхронизацию для пары customer + config-name.
// POST /api/v1/jobs
//
// Job выполняется асинхронно: API публикует job.requested и сразу
// возвращает 202 с ID; результат приходит в очередь jobs.completed.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	var req TriggerJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.CustomerID == "" {
		BadRequest(w, "customer_id is required")
		return
	}
	if req.ConfigName == "" {
		BadRequest(w, "config_name is required")
		return
	}

	// Проверяем, что конфигурация существует
	_, err := h.configRepo.Get(r.Context(), req.CustomerID, req.ConfigName)
	if HandleRepoError(w, h.logger, err, "config not found") {
		return
	}

	job := domain.NewJob(req.CustomerID, req.ConfigName)

	if err := h.publisher.PublishJobRequested(r.Context(), mq.JobRequestedPayload{
		JobID:      job.ID,
		CustomerID: job.CustomerID,
		ConfigName: job.ConfigName,
	}); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	h.logger.Info("job requested",
		"job_id", job.ID,
		"customer_id", job.CustomerID,
		"config_name", job.ConfigName,
	)

	Accepted(w, JobFromDomain(job))
}
