// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений в очереди
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - job.requested — запрошен запуск синхронизации
//   - job.completed — job достиг финального статуса
//
// Exchanges:
//   - relay.jobs — события jobs
//   - relay.dlq  — dead letter queue
package mq
