package domain

import "errors"

// Ошибки доменных сущностей.
var (
	// ErrInvalidTransition — недопустимый переход статуса job.
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrUnsupportedMethod — HTTP-метод не поддерживается endpoint'ом.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)
