package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
)

// Проверка, что CheckoutValidator удовлетворяет порту.
var _ ports.CheckoutValidator = (*CheckoutValidator)(nil)

// ErrInvalidCheckout — базовая (sentinel error) ошибка предусловий
// оформления. Возвращается до любого обращения к протоколу.
var ErrInvalidCheckout = errors.New("checkout validation failed")

// ErrUnauthenticated — оформление без авторизации; UI уводит на логин.
var ErrUnauthenticated = errors.New("checkout requires authentication")

type CheckoutValidator struct{}

func NewCheckoutValidator() *CheckoutValidator { return &CheckoutValidator{} }

// Validate — проверка входных данных подтверждения заказа.
func (v *CheckoutValidator) Validate(_ context.Context, req *domain.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("%w: пустой запрос", ErrInvalidCheckout)
	}
	if len(req.ProductIDs) == 0 {
		return fmt.Errorf("%w: не выбраны товары", ErrInvalidCheckout)
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return fmt.Errorf("%w: не указан способ оплаты", ErrInvalidCheckout)
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return fmt.Errorf("%w: не указан адрес доставки", ErrInvalidCheckout)
	}
	if req.UserID <= 0 {
		return ErrUnauthenticated
	}
	return nil
}
