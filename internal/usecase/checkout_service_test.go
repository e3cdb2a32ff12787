package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports/mocks"
	"github.com/kursovoi/storefront/internal/protocol"
	"github.com/kursovoi/storefront/internal/usecase"
)

const (
	userID    = 7
	sessionID = "sid-1"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// productRow — строка getproducts на 18 колонок.
func productRow(id int, price, discount string, storeID int) string {
	return fmt.Sprintf("%d|Товар %d|Категория|Производитель|Россия|описание|1|2024-05-01|2024-05-02|Магнит|ул. Ленина 1|Казань|+7900|%s|%s|100|img.png|%d",
		id, id, price, discount, storeID)
}

type checkoutEnv struct {
	sender    *mocks.MockCommandSender
	basket    *mocks.MockBasketService
	carts     *mocks.MockCartStore
	sessions  *mocks.MockSessionStore
	validator *mocks.MockCheckoutValidator
	events    *mocks.MockEventPublisher
	analytics *mocks.MockAnalyticsRepository
	svc       *usecase.CheckoutService
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &checkoutEnv{
		sender:    mocks.NewMockCommandSender(ctrl),
		basket:    mocks.NewMockBasketService(ctrl),
		carts:     mocks.NewMockCartStore(ctrl),
		sessions:  mocks.NewMockSessionStore(ctrl),
		validator: mocks.NewMockCheckoutValidator(ctrl),
		events:    mocks.NewMockEventPublisher(ctrl),
		analytics: mocks.NewMockAnalyticsRepository(ctrl),
	}
	env.svc = usecase.NewCheckoutService(
		protocol.NewClient(env.sender),
		env.basket, env.carts, env.sessions,
		env.validator, env.events, env.analytics,
		noopLogger{},
	)
	return env
}

func checkoutRequest() *domain.CheckoutRequest {
	return &domain.CheckoutRequest{
		UserID:          userID,
		ProductIDs:      []int{1, 2},
		PaymentMethod:   "карта",
		DeliveryAddress: "ул. Ленина 1",
	}
}

func TestConfirm_GrandTotalCountsDiscountedLines(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()
	req := checkoutRequest()

	// P1: 100, скидка 10%, qty 2 → 180; P2: 50 без скидки, qty 1 → 50.
	env.validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	env.basket.EXPECT().Get(gomock.Any(), userID).Return(domain.Basket{1: 2, 2: 1}, nil)
	env.sender.EXPECT().Send(gomock.Any(), "getproducts").
		Return(productRow(1, "100", "10", 3)+"\n"+productRow(2, "50", "0", 3), nil)

	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|1|2|180|карта|ул. Ленина 1|3").Return("OK", nil)
	env.basket.EXPECT().Remove(gomock.Any(), userID, 1).Return(nil)
	env.events.EXPECT().PublishOrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	env.analytics.EXPECT().RecordOrder(gomock.Any(), gomock.Any()).Return(nil)

	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|2|1|50|карта|ул. Ленина 1|3").Return("OK", nil)
	env.basket.EXPECT().Remove(gomock.Any(), userID, 2).Return(nil)
	env.events.EXPECT().PublishOrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	env.analytics.EXPECT().RecordOrder(gomock.Any(), gomock.Any()).Return(nil)

	env.basket.EXPECT().Count(gomock.Any(), userID).Return(0, nil)
	env.sessions.EXPECT().SetValue(gomock.Any(), sessionID, usecase.CountKey, []byte("0")).Return(nil)

	result, err := env.svc.Confirm(ctx, sessionID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.GrandTotal.Equal(decimal.NewFromInt(230)) {
		t.Fatalf("expected grand total 230, got %s", result.GrandTotal)
	}
	if !result.Completed {
		t.Fatal("checkout must complete")
	}
	if len(result.Lines) != 2 || result.Lines[0].Err != nil || result.Lines[1].Err != nil {
		t.Fatalf("unexpected lines: %+v", result.Lines)
	}
	if len(result.FailedProducts()) != 0 {
		t.Fatalf("no lines must fail: %v", result.FailedProducts())
	}
}

func TestConfirm_PartialFailureKeepsGoing(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()
	req := checkoutRequest()

	env.validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	env.basket.EXPECT().Get(gomock.Any(), userID).Return(domain.Basket{1: 2, 2: 1}, nil)
	env.sender.EXPECT().Send(gomock.Any(), "getproducts").
		Return(productRow(1, "100", "10", 3)+"\n"+productRow(2, "50", "0", 3), nil)

	// P1 оформляется, P2 сервер отвергает.
	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|1|2|180|карта|ул. Ленина 1|3").Return("OK", nil)
	env.basket.EXPECT().Remove(gomock.Any(), userID, 1).Return(nil)
	env.events.EXPECT().PublishOrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	env.analytics.EXPECT().RecordOrder(gomock.Any(), gomock.Any()).Return(nil)

	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|2|1|50|карта|ул. Ленина 1|3").Return("FAIL", nil)
	// для P2 ни удаления из корзины, ни события, ни факта — строка не создана

	env.basket.EXPECT().Count(gomock.Any(), userID).Return(1, nil)
	env.sessions.EXPECT().SetValue(gomock.Any(), sessionID, usecase.CountKey, []byte("1")).Return(nil)

	result, err := env.svc.Confirm(ctx, sessionID, req)
	if err != nil {
		t.Fatalf("line failure must not fail the checkout: %v", err)
	}
	if !result.Completed {
		t.Fatal("checkout must report completed even with failed lines")
	}
	if !result.GrandTotal.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("grand total must count only successful lines, got %s", result.GrandTotal)
	}
	failed := result.FailedProducts()
	if len(failed) != 1 || failed[0] != 2 {
		t.Fatalf("expected product 2 to fail, got %v", failed)
	}
	if !errors.Is(result.Lines[1].Err, protocol.ErrRejected) {
		t.Fatalf("failed line must carry the rejection: %v", result.Lines[1].Err)
	}
}

func TestConfirm_ValidationShortCircuits(t *testing.T) {
	env := newCheckoutEnv(t)
	req := checkoutRequest()

	sentinel := errors.New("no payment method")
	env.validator.EXPECT().Validate(gomock.Any(), req).Return(sentinel)
	// ни одного обращения к протоколу или корзине

	_, err := env.svc.Confirm(context.Background(), sessionID, req)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirm_MissingProductSkipped(t *testing.T) {
	env := newCheckoutEnv(t)
	req := checkoutRequest()

	env.validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	env.basket.EXPECT().Get(gomock.Any(), userID).Return(domain.Basket{1: 2}, nil)
	// в каталоге есть только P1
	env.sender.EXPECT().Send(gomock.Any(), "getproducts").Return(productRow(1, "100", "10", 3), nil)

	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|1|2|180|карта|ул. Ленина 1|3").Return("OK", nil)
	env.basket.EXPECT().Remove(gomock.Any(), userID, 1).Return(nil)
	env.events.EXPECT().PublishOrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	env.analytics.EXPECT().RecordOrder(gomock.Any(), gomock.Any()).Return(nil)

	env.basket.EXPECT().Count(gomock.Any(), userID).Return(0, nil)
	env.sessions.EXPECT().SetValue(gomock.Any(), sessionID, usecase.CountKey, []byte("0")).Return(nil)

	result, err := env.svc.Confirm(context.Background(), sessionID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// пропавший из каталога P2 не порождает ни заказа, ни строки-ошибки
	if len(result.Lines) != 1 || result.Lines[0].ProductID != 1 {
		t.Fatalf("unexpected lines: %+v", result.Lines)
	}
}

func TestConfirm_QtyDefaultsToOne(t *testing.T) {
	env := newCheckoutEnv(t)
	req := checkoutRequest()
	req.ProductIDs = []int{1}

	env.validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	// корзина пуста — количество по умолчанию 1
	env.basket.EXPECT().Get(gomock.Any(), userID).Return(domain.Basket{}, nil)
	env.sender.EXPECT().Send(gomock.Any(), "getproducts").Return(productRow(1, "100", "0", 3), nil)

	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|1|1|100|карта|ул. Ленина 1|3").Return("OK", nil)
	env.basket.EXPECT().Remove(gomock.Any(), userID, 1).Return(nil)
	env.events.EXPECT().PublishOrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	env.analytics.EXPECT().RecordOrder(gomock.Any(), gomock.Any()).Return(nil)

	env.basket.EXPECT().Count(gomock.Any(), userID).Return(0, nil)
	env.sessions.EXPECT().SetValue(gomock.Any(), sessionID, usecase.CountKey, []byte("0")).Return(nil)

	if _, err := env.svc.Confirm(context.Background(), sessionID, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfirm_SideConsumersAreFailSoft(t *testing.T) {
	env := newCheckoutEnv(t)
	req := checkoutRequest()
	req.ProductIDs = []int{1}

	env.validator.EXPECT().Validate(gomock.Any(), req).Return(nil)
	env.basket.EXPECT().Get(gomock.Any(), userID).Return(domain.Basket{1: 1}, nil)
	env.sender.EXPECT().Send(gomock.Any(), "getproducts").Return(productRow(1, "100", "0", 3), nil)

	env.sender.EXPECT().Send(gomock.Any(), "createorder|7|1|1|100|карта|ул. Ленина 1|3").Return("OK", nil)
	// удаление из корзины, событие и факт падают — заказ всё равно создан
	env.basket.EXPECT().Remove(gomock.Any(), userID, 1).Return(errors.New("timeout"))
	env.events.EXPECT().PublishOrderPlaced(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	env.analytics.EXPECT().RecordOrder(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	env.basket.EXPECT().Count(gomock.Any(), userID).Return(1, nil)
	env.sessions.EXPECT().SetValue(gomock.Any(), sessionID, usecase.CountKey, []byte("1")).Return(nil)

	result, err := env.svc.Confirm(context.Background(), sessionID, req)
	if err != nil {
		t.Fatalf("side consumer failures must not fail checkout: %v", err)
	}
	if !result.GrandTotal.Equal(decimal.NewFromInt(100)) || result.Lines[0].Err != nil {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestReview_TakesQuantitiesFromBasketNotForm(t *testing.T) {
	env := newCheckoutEnv(t)

	env.sender.EXPECT().Send(gomock.Any(), "getproducts").
		Return(productRow(1, "100", "10", 3)+"\n"+productRow(2, "50", "0", 3)+"\n"+productRow(9, "5", "0", 3), nil)
	env.basket.EXPECT().Get(gomock.Any(), userID).Return(domain.Basket{1: 4}, nil)

	items, err := env.svc.Review(context.Background(), userID, sessionID, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Product.ID != 1 || items[0].Quantity != 4 {
		t.Fatalf("quantity must come from basket: %+v", items[0])
	}
	if items[1].Product.ID != 2 || items[1].Quantity != 1 {
		t.Fatalf("absent basket line must default to 1: %+v", items[1])
	}
}

func TestReview_AnonymousUsesSessionCart(t *testing.T) {
	env := newCheckoutEnv(t)

	env.sender.EXPECT().Send(gomock.Any(), "getproducts").Return(productRow(1, "100", "0", 3), nil)
	env.carts.EXPECT().Get(gomock.Any(), sessionID).Return(domain.Basket{1: 2}, nil)

	items, err := env.svc.Review(context.Background(), 0, sessionID, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
}
