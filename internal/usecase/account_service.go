package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/protocol"
)

// ErrInvalidCredentials — сервер отверг пару логин/пароль.
var ErrInvalidCredentials = errors.New("invalid login or password")

// Роль покупателя при саморегистрации.
const customerRoleID = 2

// Отменённые заказы распознаются по подстроке в статусе — сервер
// присылает человекочитаемый статус без отдельного кода.
const cancelledMark = "отмен"

// AccountService — авторизация, регистрация и история заказов поверх
// командного протокола.
type AccountService struct {
	client *protocol.Client
	log    ports.Logger
}

func NewAccountService(client *protocol.Client, log ports.Logger) *AccountService {
	return &AccountService{client: client, log: log}
}

// HashPassword — sha256 в hex-представлении; на провод пароль в открытом
// виде не уходит.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Login — авторизация. Ответ "OK" — покупатель без роли; непустая строка
// — имя роли (опционально с storeId); FAIL → ErrInvalidCredentials.
// UserID разрешается отдельным запросом getusers.
func (s *AccountService) Login(ctx context.Context, login, password string) (*domain.Identity, error) {
	role, storeID, err := s.client.Authorize(ctx, login, HashPassword(password))
	if err != nil {
		if errors.Is(err, protocol.ErrRejected) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	userID, err := s.client.ResolveUserID(ctx, login)
	if err != nil {
		return nil, err
	}
	if userID <= 0 {
		// авторизация прошла, но в списке пользователей логина нет —
		// рассинхрон на сервере
		s.log.Warnf(ctx, "login %q authorized but not resolvable to id", login)
		return nil, ErrInvalidCredentials
	}

	return &domain.Identity{
		UserID:  userID,
		Login:   login,
		Role:    role,
		StoreID: storeID,
	}, nil
}

// Register — регистрация покупателя. Телефон опционален.
func (s *AccountService) Register(ctx context.Context, login, password, phone string) error {
	return s.client.Register(ctx, login, HashPassword(password), customerRoleID, strings.TrimSpace(phone))
}

// Orders — история заказов. Ошибка деградирует до пустого списка.
func (s *AccountService) Orders(ctx context.Context, userID int) ([]domain.OrderLine, error) {
	orders, err := s.client.UserOrders(ctx, userID)
	if err != nil {
		s.log.Warnf(ctx, "orders fetch failed user=%d: %v", userID, err)
		return nil, nil
	}
	return orders, nil
}

// Returns — отменённые заказы (возвраты) из общей истории.
func (s *AccountService) Returns(ctx context.Context, userID int) ([]domain.OrderLine, error) {
	orders, err := s.Orders(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []domain.OrderLine
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Status), cancelledMark) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Reviews — отзывы пользователя. Ошибка деградирует до пустого списка.
func (s *AccountService) Reviews(ctx context.Context, userID int) ([]domain.Review, error) {
	reviews, err := s.client.UserReviews(ctx, userID)
	if err != nil {
		s.log.Warnf(ctx, "reviews fetch failed user=%d: %v", userID, err)
		return nil, nil
	}
	return reviews, nil
}

// Delete — удаление аккаунта на сервере.
func (s *AccountService) Delete(ctx context.Context, userID int) error {
	return s.client.DeleteUser(ctx, userID)
}
