// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go          — Handler с DI (репозитории, publisher, logger)
//   - routes.go           — регистрация маршрутов
//   - middleware.go       — middleware (logging, recovery)
//   - response.go         — унифицированные JSON-ответы и обработка ошибок
//   - dto.go              — Data Transfer Objects (request/response)
//   - job_handler.go      — обработчики для /jobs
//   - config_handler.go   — обработчики для /customers/{customer}/configs
//   - schedule_handler.go — обработчики для /schedules
//
// API предоставляет REST endpoints для запуска синхронизаций и
// управления конфигурациями и расписаниями.
package api
