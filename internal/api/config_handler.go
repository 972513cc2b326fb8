package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/Relay/internal/config"
)

// ListConfigs возвращает все конфигурации customer.
// GET /api/v1/customers/{customer}/configs
func (h *Handler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customer")

	configs, err := h.configRepo.List(r.Context(), customerID)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]ConfigResponse, len(configs))
	for i := range configs {
		result[i] = ConfigFromStored(&configs[i])
	}

	List(w, result, len(result))
}

// GetConfig возвращает конфигурацию по customer и имени.
// GET /api/v1/customers/{customer}/configs/{name}
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customer")
	name := r.PathValue("name")

	cfg, err := h.configRepo.Get(r.Context(), customerID, name)
	if HandleRepoError(w, h.logger, err, "config not found") {
		return
	}

	Success(w, ConfigFromStored(cfg))
}

// PutConfig создаёт или обновляет конфигурацию.
// PUT /api/v1/customers/{customer}/configs/{name}
//
// Spec валидируется до записи; невалидная конфигурация — 422.
func (h *Handler) PutConfig(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customer")
	name := r.PathValue("name")

	var req PutConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if err := config.ValidateSpec(&req.Spec); err != nil {
		InvalidConfig(w, err.Error())
		return
	}

	cfg, err := h.configRepo.Upsert(r.Context(), customerID, name, req.Spec)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	h.logger.Info("config saved",
		"customer_id", customerID,
		"config_name", name,
	)

	Success(w, ConfigFromStored(cfg))
}

// DeleteConfig удаляет конфигурацию.
// DELETE /api/v1/customers/{customer}/configs/{name}
func (h *Handler) DeleteConfig(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customer")
	name := r.PathValue("name")

	if err := h.configRepo.Delete(r.Context(), customerID, name); err != nil {
		if HandleRepoError(w, h.logger, err, "config not found") {
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}
