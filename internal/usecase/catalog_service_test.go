package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/kursovoi/storefront/internal/ports/mocks"
	"github.com/kursovoi/storefront/internal/protocol"
	"github.com/kursovoi/storefront/internal/usecase"
)

func newCatalogService(t *testing.T) (*usecase.CatalogService, *mocks.MockCommandSender) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockCommandSender(ctrl)
	return usecase.NewCatalogService(protocol.NewClient(sender), noopLogger{}), sender
}

const storeRows = "1|Магнит|ул. Ленина 1|Казань|+7900|ООО Ромашка|1\n" +
	"2|Пятёрочка|ул. Мира 2|Москва|+7901|ООО Лютик|1\n" +
	"3|Закрытый|ул. Тихая 3|Казань|+7902|ООО Тень|0"

func TestCatalogProducts_FailSoft(t *testing.T) {
	svc, sender := newCatalogService(t)

	sender.EXPECT().Send(gomock.Any(), "getproducts").Return("", errors.New("timeout"))

	if products := svc.Products(context.Background()); products != nil {
		t.Fatalf("unavailable server must look like empty catalog, got %+v", products)
	}
}

func TestCatalogProduct_ByID(t *testing.T) {
	svc, sender := newCatalogService(t)

	sender.EXPECT().Send(gomock.Any(), "getproducts").
		Return(productRow(1, "100", "0", 3)+"\n"+productRow(2, "50", "0", 3), nil).Times(2)

	p, ok := svc.Product(context.Background(), 2)
	if !ok || p.ID != 2 {
		t.Fatalf("expected product 2, got ok=%v %+v", ok, p)
	}

	if _, ok := svc.Product(context.Background(), 99); ok {
		t.Fatal("missing product must return ok=false")
	}
}

func TestCatalogStores_OnlyActive(t *testing.T) {
	svc, sender := newCatalogService(t)

	sender.EXPECT().Send(gomock.Any(), "getallstores").Return(storeRows, nil)

	stores := svc.Stores(context.Background(), "")
	if len(stores) != 2 {
		t.Fatalf("inactive stores must be hidden, got %+v", stores)
	}
}

func TestCatalogStores_QueryFiltersNameAddressCity(t *testing.T) {
	svc, sender := newCatalogService(t)

	sender.EXPECT().Send(gomock.Any(), "getallstores").Return(storeRows, nil).Times(3)
	ctx := context.Background()

	byName := svc.Stores(ctx, "магнит")
	if len(byName) != 1 || byName[0].ID != 1 {
		t.Fatalf("name filter: %+v", byName)
	}

	byCity := svc.Stores(ctx, "Москва")
	if len(byCity) != 1 || byCity[0].ID != 2 {
		t.Fatalf("city filter: %+v", byCity)
	}

	byAddress := svc.Stores(ctx, "ленина")
	if len(byAddress) != 1 || byAddress[0].ID != 1 {
		t.Fatalf("address filter: %+v", byAddress)
	}
}

func TestCatalogStore_InactiveHidden(t *testing.T) {
	svc, sender := newCatalogService(t)

	sender.EXPECT().Send(gomock.Any(), "getallstores").Return(storeRows, nil).Times(2)
	ctx := context.Background()

	if st, ok := svc.Store(ctx, 1); !ok || st.Name != "Магнит" {
		t.Fatalf("expected store 1, got ok=%v %+v", ok, st)
	}
	if _, ok := svc.Store(ctx, 3); ok {
		t.Fatal("inactive store must not resolve")
	}
}
