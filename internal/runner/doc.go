// Package runner содержит исполнителя jobs синхронизации.
//
// Runner потребляет события job.requested из RabbitMQ, загружает
// конфигурацию синхронизации, прогоняет pipeline fetch → transform →
// deliver и публикует job.completed с итоговым статусом.
//
// Runners масштабируются горизонтально — несколько экземпляров
// могут потреблять из одной очереди.
package runner
