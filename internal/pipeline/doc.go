// Package pipeline содержит use cases трёх стадий пайплайна:
// fetch → transform → deliver.
//
// Каждый use case делает одно и то же: переводит job по state machine,
// делегирует работу порту и при ошибке записывает её на job
// (FAILED + префиксованное сообщение), возвращая исходную ошибку наверх.
// Композиция стадий для одного job — ответственность runner'а,
// который останавливает пайплайн на первой ошибке.
package pipeline
