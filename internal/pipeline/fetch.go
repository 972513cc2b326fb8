package pipeline

import (
	"context"
	"fmt"

	"github.com/shaiso/Relay/internal/domain"
)

// FetchUseCase — стадия загрузки исходных данных.
//
// Переводит job в FETCHING и делегирует загрузку source-порту.
// Сама стадия не делает retry — retry живёт внутри сетевого адаптера.
type FetchUseCase struct {
	source SourcePort
}

// NewFetchUseCase создаёт FetchUseCase.
func NewFetchUseCase(source SourcePort) *FetchUseCase {
	return &FetchUseCase{source: source}
}

// Execute выполняет стадию fetch для job.
//
// При ошибке адаптера job помечается FAILED с префиксованным сообщением,
// а исходная ошибка возвращается caller'у без изменений.
func (uc *FetchUseCase) Execute(ctx context.Context, job *domain.Job, endpoint *domain.Endpoint) (*domain.Response, error) {
	if err := job.MarkFetching(); err != nil {
		return nil, err
	}

	resp, err := uc.source.Fetch(ctx, endpoint)
	if err != nil {
		job.MarkFailed(fmt.Sprintf("Failed to fetch source data: %v", err))
		return nil, err
	}

	return resp, nil
}
