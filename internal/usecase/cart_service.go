package usecase

import (
	"context"
	"strconv"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/protocol"
)

// CartService — фасад над двумя корзинами: серверной (авторизованный
// пользователь) и сессионной (аноним). Выбор бэкенда — по наличию
// identity; внешняя форма операций одинаковая.
type CartService struct {
	client   *protocol.Client
	remote   ports.BasketService
	local    ports.CartStore
	sessions ports.SessionStore
	log      ports.Logger
}

func NewCartService(
	client *protocol.Client,
	remote ports.BasketService,
	local ports.CartStore,
	sessions ports.SessionStore,
	log ports.Logger,
) *CartService {
	return &CartService{
		client:   client,
		remote:   remote,
		local:    local,
		sessions: sessions,
		log:      log,
	}
}

// View — содержимое корзины. Всегда перечитывает источник истины.
func (s *CartService) View(ctx context.Context, ident *domain.Identity, sessionID string) (domain.Basket, error) {
	if ident != nil {
		return s.remote.Get(ctx, ident.UserID)
	}
	return s.local.Get(ctx, sessionID)
}

// Items — корзина, развёрнутая в снимки товаров для витрины.
// Товары, пропавшие из каталога, в выдачу не попадают.
func (s *CartService) Items(ctx context.Context, ident *domain.Identity, sessionID string) ([]domain.ReviewItem, error) {
	basket, err := s.View(ctx, ident, sessionID)
	if err != nil {
		return nil, err
	}
	if len(basket) == 0 {
		return nil, nil
	}

	products, err := s.client.Products(ctx)
	if err != nil {
		s.log.Warnf(ctx, "cart items: products fetch failed: %v", err)
		return nil, nil
	}

	var items []domain.ReviewItem
	for _, p := range products {
		if qty, ok := basket[p.ID]; ok {
			items = append(items, domain.ReviewItem{Product: p, Quantity: qty})
		}
	}
	return items, nil
}

// Add — добавить qty единиц товара; счётчик пересчитывается заново.
func (s *CartService) Add(ctx context.Context, ident *domain.Identity, sessionID string, productID, qty int) (int, error) {
	if ident != nil {
		if err := s.remote.Add(ctx, ident.UserID, productID, qty); err != nil {
			return 0, err
		}
	} else {
		if err := s.local.Add(ctx, sessionID, productID, qty); err != nil {
			return 0, err
		}
	}
	return s.RefreshCount(ctx, ident, sessionID)
}

// SetQuantity — абсолютное количество; qty <= 0 удаляет позицию.
func (s *CartService) SetQuantity(ctx context.Context, ident *domain.Identity, sessionID string, productID, qty int) (int, error) {
	if ident != nil {
		if err := s.remote.SetQuantity(ctx, ident.UserID, productID, qty); err != nil {
			return 0, err
		}
	} else {
		if err := s.local.SetQuantity(ctx, sessionID, productID, qty); err != nil {
			return 0, err
		}
	}
	return s.RefreshCount(ctx, ident, sessionID)
}

func (s *CartService) Remove(ctx context.Context, ident *domain.Identity, sessionID string, productID int) (int, error) {
	if ident != nil {
		if err := s.remote.Remove(ctx, ident.UserID, productID); err != nil {
			return 0, err
		}
	} else {
		if err := s.local.Remove(ctx, sessionID, productID); err != nil {
			return 0, err
		}
	}
	return s.RefreshCount(ctx, ident, sessionID)
}

func (s *CartService) Clear(ctx context.Context, ident *domain.Identity, sessionID string) (int, error) {
	if ident != nil {
		if err := s.remote.Clear(ctx, ident.UserID); err != nil {
			return 0, err
		}
	} else {
		if err := s.local.Clear(ctx, sessionID); err != nil {
			return 0, err
		}
	}
	return s.RefreshCount(ctx, ident, sessionID)
}

// RefreshCount — авторитетный пересчёт счётчика (сумма количеств) с
// записью витринного кэша в сессию.
func (s *CartService) RefreshCount(ctx context.Context, ident *domain.Identity, sessionID string) (int, error) {
	var (
		count int
		err   error
	)
	if ident != nil {
		count, err = s.remote.Count(ctx, ident.UserID)
	} else {
		count, err = s.local.Count(ctx, sessionID)
	}
	if err != nil {
		return 0, err
	}
	if sessionID != "" {
		_ = s.sessions.SetValue(ctx, sessionID, CountKey, []byte(strconv.Itoa(count)))
	}
	return count, nil
}

// CachedCount — витринное значение из сессии; при промахе — честный
// пересчёт. Никогда не используется как источник истины.
func (s *CartService) CachedCount(ctx context.Context, ident *domain.Identity, sessionID string) int {
	if sessionID != "" {
		if raw, ok := s.sessions.GetValue(ctx, sessionID, CountKey); ok {
			if n, err := strconv.Atoi(string(raw)); err == nil {
				return n
			}
		}
	}
	count, err := s.RefreshCount(ctx, ident, sessionID)
	if err != nil {
		return 0
	}
	return count
}
