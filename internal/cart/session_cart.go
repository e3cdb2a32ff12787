// Пакет cart — корзина анонимного пользователя поверх сессионного
// хранилища. Внешняя форма операций совпадает с серверной корзиной,
// источник истины — сессия.
package cart

import (
	"context"

	"github.com/fxamacker/cbor/v2"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
)

// CartKey — ключ сериализованной корзины в сессии.
const CartKey = "cart"

var _ ports.CartStore = (*SessionCart)(nil)

// SessionCart хранит корзину как CBOR-кодированное отображение
// productID → количество. Битая запись читается как пустая корзина.
type SessionCart struct {
	sessions ports.SessionStore
}

func NewSessionCart(sessions ports.SessionStore) *SessionCart {
	return &SessionCart{sessions: sessions}
}

func (c *SessionCart) Get(ctx context.Context, sessionID string) (domain.Basket, error) {
	raw, ok := c.sessions.GetValue(ctx, sessionID, CartKey)
	if !ok {
		return make(domain.Basket), nil
	}
	var m map[int]int
	if err := cbor.Unmarshal(raw, &m); err != nil || m == nil {
		return make(domain.Basket), nil
	}
	return domain.Basket(m), nil
}

func (c *SessionCart) Add(ctx context.Context, sessionID string, productID, qty int) error {
	if qty <= 0 {
		return nil
	}
	basket, _ := c.Get(ctx, sessionID)
	basket[productID] += qty
	return c.save(ctx, sessionID, basket)
}

// SetQuantity — абсолютное значение; qty <= 0 эквивалентно Remove.
func (c *SessionCart) SetQuantity(ctx context.Context, sessionID string, productID, qty int) error {
	basket, _ := c.Get(ctx, sessionID)
	if qty <= 0 {
		delete(basket, productID)
	} else {
		basket[productID] = qty
	}
	return c.save(ctx, sessionID, basket)
}

func (c *SessionCart) Remove(ctx context.Context, sessionID string, productID int) error {
	basket, _ := c.Get(ctx, sessionID)
	delete(basket, productID)
	return c.save(ctx, sessionID, basket)
}

func (c *SessionCart) Clear(ctx context.Context, sessionID string) error {
	return c.save(ctx, sessionID, make(domain.Basket))
}

func (c *SessionCart) Count(ctx context.Context, sessionID string) (int, error) {
	basket, err := c.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return basket.Count(), nil
}

func (c *SessionCart) save(ctx context.Context, sessionID string, basket domain.Basket) error {
	raw, err := cbor.Marshal(map[int]int(basket))
	if err != nil {
		return err
	}
	return c.sessions.SetValue(ctx, sessionID, CartKey, raw)
}
