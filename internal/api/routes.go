package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Jobs
	mux.Handle("POST /api/v1/jobs", chain(http.HandlerFunc(h.TriggerJob)))

	// Configs
	mux.Handle("GET /api/v1/customers/{customer}/configs", chain(http.HandlerFunc(h.ListConfigs)))
	mux.Handle("GET /api/v1/customers/{customer}/configs/{name}", chain(http.HandlerFunc(h.GetConfig)))
	mux.Handle("PUT /api/v1/customers/{customer}/configs/{name}", chain(http.HandlerFunc(h.PutConfig)))
	mux.Handle("DELETE /api/v1/customers/{customer}/configs/{name}", chain(http.HandlerFunc(h.DeleteConfig)))

	// Schedules
	mux.Handle("GET /api/v1/schedules", chain(http.HandlerFunc(h.ListSchedules)))
	mux.Handle("POST /api/v1/schedules", chain(http.HandlerFunc(h.CreateSchedule)))
	mux.Handle("GET /api/v1/schedules/{id}", chain(http.HandlerFunc(h.GetSchedule)))
	mux.Handle("PUT /api/v1/schedules/{id}", chain(http.HandlerFunc(h.UpdateSchedule)))
	mux.Handle("DELETE /api/v1/schedules/{id}", chain(http.HandlerFunc(h.DeleteSchedule)))
	mux.Handle("PUT /api/v1/schedules/{id}/enabled", chain(http.HandlerFunc(h.SetScheduleEnabled)))
}
