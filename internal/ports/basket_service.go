package ports

import (
	"context"

	"github.com/kursovoi/storefront/internal/domain"
)

// BasketService — серверная корзина авторизованного пользователя.
// Источник истины живёт на удалённом сервере; каждое чтение — новый
// round-trip. Мутации fail-soft: ошибка транспорта/кодека поглощается,
// вызов выглядит как no-op.
type BasketService interface {
	Get(ctx context.Context, userID int) (domain.Basket, error)
	Add(ctx context.Context, userID, productID, qty int) error
	SetQuantity(ctx context.Context, userID, productID, qty int) error
	Remove(ctx context.Context, userID, productID int) error
	Clear(ctx context.Context, userID int) error
	Count(ctx context.Context, userID int) (int, error)
}

// CartStore — сессионная корзина анонимного пользователя.
// Внешняя форма совпадает с BasketService, хранилище — сессия.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (domain.Basket, error)
	Add(ctx context.Context, sessionID string, productID, qty int) error
	SetQuantity(ctx context.Context, sessionID string, productID, qty int) error
	Remove(ctx context.Context, sessionID string, productID int) error
	Clear(ctx context.Context, sessionID string) error
	Count(ctx context.Context, sessionID string) (int, error)
}
