package domain

// JobStatus — статус выполнения job.
//
// Жизненный цикл:
//
//	PENDING → FETCHING → TRANSFORMING → DELIVERING → COMPLETED
//	FAILED достижим из любого нефинального статуса
type JobStatus string

const (
	// JobStatusPending — job создан, но ещё не начал выполняться.
	JobStatusPending JobStatus = "PENDING"

	// JobStatusFetching — идёт загрузка данных из source API.
	JobStatusFetching JobStatus = "FETCHING"

	// JobStatusTransforming — идёт трансформация данных по правилам.
	JobStatusTransforming JobStatus = "TRANSFORMING"

	// JobStatusDelivering — идёт доставка данных в destination API.
	JobStatusDelivering JobStatus = "DELIVERING"

	// JobStatusCompleted — job успешно завершён.
	JobStatusCompleted JobStatus = "COMPLETED"

	// JobStatusFailed — job завершился с ошибкой (на любой стадии).
	JobStatusFailed JobStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный (job завершён).
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление JobStatus.
func (s JobStatus) String() string {
	return string(s)
}
