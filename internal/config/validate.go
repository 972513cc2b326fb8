package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/shaiso/Relay/internal/domain"
)

// validate — общий инстанс валидатора.
// Потокобезопасен, кэширует метаданные структур.
var validate = validator.New()

// ValidateSpec проверяет SyncSpec по struct-тегам.
//
// Используется и file-loader'ом, и API при приёме конфигурации.
func ValidateSpec(spec *domain.SyncSpec) error {
	if err := validate.Struct(spec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
