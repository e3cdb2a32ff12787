// Пакет basket — серверная корзина авторизованного пользователя,
// выраженная через командный протокол. Клиентского кэша нет: каждое
// чтение — новый round-trip к источнику истины.
package basket

import (
	"context"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/protocol"
)

var _ ports.BasketService = (*Remote)(nil)

// Remote — агрегатор корзины поверх протокольного клиента.
// Мутации fail-soft: ошибка логируется и поглощается, UI продолжает
// работать оптимистично. Подтверждения записи нет — фактическое
// состояние покажет следующий Get.
type Remote struct {
	client *protocol.Client
	log    ports.Logger
}

func NewRemote(client *protocol.Client, log ports.Logger) *Remote {
	return &Remote{client: client, log: log}
}

// Get — содержимое корзины. Ошибка транспорта/кодека деградирует до
// пустой корзины.
func (r *Remote) Get(ctx context.Context, userID int) (domain.Basket, error) {
	basket, err := r.client.Basket(ctx, userID)
	if err != nil {
		r.log.Warnf(ctx, "basket fetch failed user=%d: %v", userID, err)
		return make(domain.Basket), nil
	}
	return basket, nil
}

// Add — инкрементальное добавление; обратного чтения не делает.
// qty <= 0 — no-op: отрицательные количества на провод не уходят.
func (r *Remote) Add(ctx context.Context, userID, productID, qty int) error {
	if qty <= 0 {
		return nil
	}
	if err := r.client.AddToBasket(ctx, userID, productID, qty); err != nil {
		r.log.Warnf(ctx, "basket add failed user=%d product=%d: %v", userID, productID, err)
	}
	return nil
}

// SetQuantity — абсолютное значение; qty <= 0 эквивалентно Remove.
func (r *Remote) SetQuantity(ctx context.Context, userID, productID, qty int) error {
	if qty <= 0 {
		return r.Remove(ctx, userID, productID)
	}
	if err := r.client.SetBasket(ctx, userID, productID, qty); err != nil {
		r.log.Warnf(ctx, "basket set failed user=%d product=%d: %v", userID, productID, err)
	}
	return nil
}

func (r *Remote) Remove(ctx context.Context, userID, productID int) error {
	if err := r.client.RemoveFromBasket(ctx, userID, productID); err != nil {
		r.log.Warnf(ctx, "basket remove failed user=%d product=%d: %v", userID, productID, err)
	}
	return nil
}

func (r *Remote) Clear(ctx context.Context, userID int) error {
	if err := r.client.ClearBasket(ctx, userID); err != nil {
		r.log.Warnf(ctx, "basket clear failed user=%d: %v", userID, err)
	}
	return nil
}

// Count — сумма количеств; после каждой мутации пересчитывается заново.
func (r *Remote) Count(ctx context.Context, userID int) (int, error) {
	basket, err := r.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return basket.Count(), nil
}
