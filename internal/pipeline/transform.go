package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Relay/internal/domain"
)

// TransformUseCase — стадия трансформации данных.
//
// Переводит job в TRANSFORMING и делегирует работу движку правил.
type TransformUseCase struct {
	engine TransformPort
}

// NewTransformUseCase создаёт TransformUseCase.
func NewTransformUseCase(engine TransformPort) *TransformUseCase {
	return &TransformUseCase{engine: engine}
}

// Execute выполняет стадию transform для job.
//
// При ошибке движка job помечается FAILED с префиксованным сообщением,
// а исходная ошибка возвращается caller'у без изменений.
func (uc *TransformUseCase) Execute(ctx context.Context, job *domain.Job, sourceData map[string]any, rules []domain.Rule) (map[string]any, error) {
	if err := job.MarkTransforming(); err != nil {
		return nil, err
	}

	transformed, err := uc.engine.Transform(ctx, sourceData, rules)
	if err != nil {
		job.MarkFailed(fmt.Sprintf("Failed to transform data: %v", err))
		return nil, err
	}

	return transformed, nil
}
