package ports

import (
	"context"

	"github.com/kursovoi/storefront/internal/domain"
)

// EventPublisher — публикация события о созданном заказе (fire-and-forget).
// Оформление заказа не зависит от результата публикации.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev domain.OrderPlacedEvent) error
	Close() error
}
