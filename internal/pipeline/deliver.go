package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Relay/internal/domain"
)

// DeliverUseCase — стадия доставки результата.
//
// Переводит job в DELIVERING, делегирует доставку destination-порту
// и при успехе закрывает job как COMPLETED.
type DeliverUseCase struct {
	destination DestinationPort
}

// NewDeliverUseCase создаёт DeliverUseCase.
func NewDeliverUseCase(destination DestinationPort) *DeliverUseCase {
	return &DeliverUseCase{destination: destination}
}

// Execute выполняет стадию deliver для job.
//
// При ошибке адаптера job помечается FAILED с префиксованным сообщением,
// а исходная ошибка возвращается caller'у без изменений.
func (uc *DeliverUseCase) Execute(ctx context.Context, job *domain.Job, endpoint *domain.Endpoint, data map[string]any) error {
	if err := job.MarkDelivering(); err != nil {
		return err
	}

	if err := uc.destination.Deliver(ctx, endpoint, data); err != nil {
		job.MarkFailed(fmt.Sprintf("Failed to deliver data: %v", err))
		return err
	}

	job.MarkCompleted()
	return nil
}
