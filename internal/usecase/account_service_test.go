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

func newAccountService(t *testing.T) (*usecase.AccountService, *mocks.MockCommandSender) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockCommandSender(ctrl)
	return usecase.NewAccountService(protocol.NewClient(sender), noopLogger{}), sender
}

func TestLogin_Customer(t *testing.T) {
	svc, sender := newAccountService(t)
	hash := usecase.HashPassword("secret")

	sender.EXPECT().Send(gomock.Any(), "authorize|ivan|"+hash).Return("OK", nil)
	sender.EXPECT().Send(gomock.Any(), "getusers").Return("1|admin\n7|ivan", nil)

	ident, err := svc.Login(context.Background(), "ivan", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.UserID != 7 || ident.Login != "ivan" || ident.Role != "" || ident.StoreID != 0 {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestLogin_SellerWithStore(t *testing.T) {
	svc, sender := newAccountService(t)
	hash := usecase.HashPassword("secret")

	sender.EXPECT().Send(gomock.Any(), "authorize|boss|"+hash).Return("seller|4", nil)
	sender.EXPECT().Send(gomock.Any(), "getusers").Return("9|boss", nil)

	ident, err := svc.Login(context.Background(), "boss", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.Role != "seller" || ident.StoreID != 4 || ident.UserID != 9 {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	svc, sender := newAccountService(t)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("FAIL", nil)

	_, err := svc.Login(context.Background(), "ivan", "wrong")
	if !errors.Is(err, usecase.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnresolvableUser(t *testing.T) {
	svc, sender := newAccountService(t)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("OK", nil)
	sender.EXPECT().Send(gomock.Any(), "getusers").Return("1|someoneelse", nil)

	_, err := svc.Login(context.Background(), "ivan", "secret")
	if !errors.Is(err, usecase.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unresolvable login, got %v", err)
	}
}

func TestLogin_PasswordNeverSentPlain(t *testing.T) {
	svc, sender := newAccountService(t)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd string) (string, error) {
			if cmd == "authorize|ivan|secret" {
				t.Fatal("plaintext password on the wire")
			}
			return "FAIL", nil
		})

	_, _ = svc.Login(context.Background(), "ivan", "secret")
}

func TestRegister_SendsCustomerRole(t *testing.T) {
	svc, sender := newAccountService(t)
	hash := usecase.HashPassword("secret")

	sender.EXPECT().Send(gomock.Any(), "register|ivan|"+hash+"|2|+7900").Return("OK", nil)

	if err := svc.Register(context.Background(), "ivan", "secret", " +7900 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrders_FailSoftToEmpty(t *testing.T) {
	svc, sender := newAccountService(t)

	sender.EXPECT().Send(gomock.Any(), "getuserorders|7").Return("", errors.New("timeout"))

	orders, err := svc.Orders(context.Background(), 7)
	if err != nil || orders != nil {
		t.Fatalf("expected empty history without error, got %+v err=%v", orders, err)
	}
}

func TestReturns_FiltersCancelled(t *testing.T) {
	svc, sender := newAccountService(t)

	resp := "ord-1|5|2024-05-01|доставлен|100\n" +
		"ord-2|6|2024-05-02|Отменён|50\n" +
		"ord-3|7|2024-05-03|отменен покупателем|25"
	sender.EXPECT().Send(gomock.Any(), "getuserorders|7").Return(resp, nil)

	returns, err := svc.Returns(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(returns) != 2 || returns[0].ID != "ord-2" || returns[1].ID != "ord-3" {
		t.Fatalf("unexpected returns: %+v", returns)
	}
}

func TestReviews_FailSoftToEmpty(t *testing.T) {
	svc, sender := newAccountService(t)

	sender.EXPECT().Send(gomock.Any(), "getuserreviews|7").Return("", errors.New("timeout"))

	reviews, err := svc.Reviews(context.Background(), 7)
	if err != nil || reviews != nil {
		t.Fatalf("expected empty reviews without error, got %+v err=%v", reviews, err)
	}
}

func TestReviews_ReturnsParsedList(t *testing.T) {
	svc, sender := newAccountService(t)

	resp := "rev-1|5|Отлично|Свежий кефир|5|2024-05-01"
	sender.EXPECT().Send(gomock.Any(), "getuserreviews|7").Return(resp, nil)

	reviews, err := svc.Reviews(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ID != "rev-1" || reviews[0].Rating != 5 {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	if usecase.HashPassword("a") != usecase.HashPassword("a") {
		t.Fatal("hash must be deterministic")
	}
	if usecase.HashPassword("a") == usecase.HashPassword("b") {
		t.Fatal("different passwords must hash differently")
	}
	if len(usecase.HashPassword("a")) != 64 {
		t.Fatal("expected sha256 hex digest")
	}
}
