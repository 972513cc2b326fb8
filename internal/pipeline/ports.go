package pipeline

import (
	"context"

	"github.com/shaiso/Relay/internal/domain"
)

// SourcePort — порт загрузки данных из source API.
//
// Реализация: client.SourceClient.
type SourcePort interface {
	Fetch(ctx context.Context, endpoint *domain.Endpoint) (*domain.Response, error)
}

// TransformPort — порт трансформации данных по правилам.
//
// Реализация: transform.Engine.
type TransformPort interface {
	Transform(ctx context.Context, source map[string]any, rules []domain.Rule) (map[string]any, error)
}

// DestinationPort — порт доставки данных в destination API.
//
// Реализация: client.DestinationClient.
type DestinationPort interface {
	Deliver(ctx context.Context, endpoint *domain.Endpoint, data map[string]any) error
}
