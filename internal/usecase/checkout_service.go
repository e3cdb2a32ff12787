package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/protocol"
	"github.com/kursovoi/storefront/pkg/metrics"
)

// CountKey — ключ кэша отображаемого счётчика корзины в сессии.
// Кэш чисто витринный: после каждой мутации пересчитывается заново
// и никогда не служит источником истины.
const CountKey = "cartCount"

// CheckoutService — оркестратор оформления заказа.
//
// Протокол не умеет заказ из нескольких позиций, поэтому оформление —
// это последовательность независимых попыток по одной на товар. Ошибка
// одной позиции не откатывает уже созданные заказы и не останавливает
// обработку остальных: частичное оформление — осознанная политика,
// а не недостающая транзакционность.
type CheckoutService struct {
	client    *protocol.Client
	basket    ports.BasketService
	carts     ports.CartStore
	sessions  ports.SessionStore
	validator ports.CheckoutValidator
	events    ports.EventPublisher
	analytics ports.AnalyticsRepository // nil, если отчётная база выключена
	log       ports.Logger
}

func NewCheckoutService(
	client *protocol.Client,
	basket ports.BasketService,
	carts ports.CartStore,
	sessions ports.SessionStore,
	validator ports.CheckoutValidator,
	events ports.EventPublisher,
	analytics ports.AnalyticsRepository,
	log ports.Logger,
) *CheckoutService {
	return &CheckoutService{
		client:    client,
		basket:    basket,
		carts:     carts,
		sessions:  sessions,
		validator: validator,
		events:    events,
		analytics: analytics,
		log:       log,
	}
}

// Review — страница подтверждения: свежие снимки товаров и количества
// из корзины. Побочных эффектов нет; повторный вызов заново перечитывает
// цены и количества.
func (s *CheckoutService) Review(ctx context.Context, userID int, sessionID string, productIDs []int) ([]domain.ReviewItem, error) {
	products, err := s.client.Products(ctx)
	if err != nil {
		s.log.Warnf(ctx, "review: products fetch failed: %v", err)
		products = nil
	}

	quantities := s.quantities(ctx, userID, sessionID)

	requested := make(map[int]bool, len(productIDs))
	for _, id := range productIDs {
		requested[id] = true
	}

	var items []domain.ReviewItem
	for _, p := range products {
		if !requested[p.ID] {
			continue
		}
		qty := quantities[p.ID]
		if qty <= 0 {
			qty = 1
		}
		items = append(items, domain.ReviewItem{Product: p, Quantity: qty})
	}
	return items, nil
}

// Confirm — подтверждение оформления (§ машина состояний: Confirming →
// Completed/PartiallyFailed). Количества берутся из серверной корзины,
// а не из формы; цены перечитываются свежим getproducts.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string, req *domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return nil, err
	}

	// Источник истины по количествам — серверная корзина.
	quantities, _ := s.basket.Get(ctx, req.UserID)

	// Свежие цены и скидки. Недоступный каталог деградирует до пустого:
	// все позиции будут пропущены, оформление завершится без строк.
	products := make(map[int]domain.ProductSnapshot)
	if list, err := s.client.Products(ctx); err != nil {
		s.log.Warnf(ctx, "confirm: products fetch failed user=%d: %v", req.UserID, err)
	} else {
		for _, p := range list {
			products[p.ID] = p
		}
	}

	result := &domain.CheckoutResult{GrandTotal: decimal.Zero}
	for _, pid := range req.ProductIDs {
		p, ok := products[pid]
		if !ok {
			s.log.Warnf(ctx, "confirm: product %d absent in catalog, skipped", pid)
			continue
		}
		qty := quantities[pid]
		if qty <= 0 {
			qty = 1
		}

		unit := p.EffectivePrice()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		line := domain.CheckoutLine{
			ProductID: pid,
			Quantity:  qty,
			UnitPrice: unit,
			LineTotal: lineTotal,
		}

		err := s.client.CreateOrder(ctx, req.UserID, pid, qty, lineTotal,
			req.PaymentMethod, req.DeliveryAddress, p.StoreID)
		if err != nil {
			// Независимость строк: фиксируем ошибку и идём дальше.
			line.Err = err
			metrics.CheckoutLines.WithLabelValues("failed").Inc()
			s.log.Warnf(ctx, "confirm: createorder failed user=%d product=%d: %v", req.UserID, pid, err)
			result.Lines = append(result.Lines, line)
			continue
		}

		metrics.CheckoutLines.WithLabelValues("ok").Inc()
		result.GrandTotal = result.GrandTotal.Add(lineTotal)

		// Успешный заказ сразу убирается из корзины. Если удаление не
		// дошло, в корзине останется уже заказанный товар —
		// документированный риск текущего поведения.
		_ = s.basket.Remove(ctx, req.UserID, pid)

		s.afterLine(ctx, req, p, qty, lineTotal)
		result.Lines = append(result.Lines, line)
	}

	// Пересчёт витринного счётчика после всех мутаций.
	s.refreshCount(ctx, req.UserID, sessionID)

	result.Completed = true
	result.FinishedAt = time.Now()
	return result, nil
}

// afterLine — побочные потребители успешной строки: событие в Kafka и
// факт в отчётной базе. Оба fail-soft.
func (s *CheckoutService) afterLine(ctx context.Context, req *domain.CheckoutRequest, p domain.ProductSnapshot, qty int, lineTotal decimal.Decimal) {
	placedAt := time.Now()

	if s.events != nil {
		_ = s.events.PublishOrderPlaced(ctx, domain.OrderPlacedEvent{
			UserID:        req.UserID,
			ProductID:     p.ID,
			Quantity:      qty,
			LineTotal:     lineTotal.String(),
			PaymentMethod: req.PaymentMethod,
			StoreID:       p.StoreID,
			PlacedAt:      placedAt,
		})
	}

	if s.analytics != nil {
		if err := s.analytics.RecordOrder(ctx, &domain.OrderFact{
			UserID:    req.UserID,
			ProductID: p.ID,
			StoreID:   p.StoreID,
			Quantity:  qty,
			Total:     lineTotal,
			PlacedAt:  placedAt,
		}); err != nil {
			s.log.Warnf(ctx, "confirm: record order fact failed product=%d: %v", p.ID, err)
		}
	}
}

func (s *CheckoutService) refreshCount(ctx context.Context, userID int, sessionID string) {
	count, err := s.basket.Count(ctx, userID)
	if err != nil {
		return
	}
	if sessionID != "" {
		_ = s.sessions.SetValue(ctx, sessionID, CountKey, []byte(strconv.Itoa(count)))
	}
}

// quantities — количества из серверной корзины (авторизованный) или из
// сессионной (аноним).
func (s *CheckoutService) quantities(ctx context.Context, userID int, sessionID string) domain.Basket {
	if userID > 0 {
		basket, _ := s.basket.Get(ctx, userID)
		return basket
	}
	basket, _ := s.carts.Get(ctx, sessionID)
	return basket
}
