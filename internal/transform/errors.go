package transform

import "errors"

// Ошибки движка трансформации.
var (
	// ErrTransform — трансформация не удалась (базовая ошибка всего вызова Transform).
	ErrTransform = errors.New("transformation failed")

	// ErrUnknownOperation — операция с таким именем не зарегистрирована.
	ErrUnknownOperation = errors.New("unknown transformation operation")

	// ErrMissingTargetField — в правиле не задан target_field.
	ErrMissingTargetField = errors.New("missing target_field in rule")

	// ErrBadDateFormat — неподдерживаемая директива в формате даты.
	ErrBadDateFormat = errors.New("unsupported date format directive")
)
