package config

import "errors"

// Ошибки конфигурационного слоя.
var (
	// ErrNotFound — конфигурация для пары customer + config-name не найдена.
	ErrNotFound = errors.New("config not found")

	// ErrInvalid — конфигурация не прошла валидацию схемы.
	ErrInvalid = errors.New("config validation failed")
)
