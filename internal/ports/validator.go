package ports

import (
	"context"

	"github.com/kursovoi/storefront/internal/domain"
)

// CheckoutValidator — предусловия оформления заказа.
// Проверяется до любого обращения к протоколу.
type CheckoutValidator interface {
	Validate(ctx context.Context, req *domain.CheckoutRequest) error
}
