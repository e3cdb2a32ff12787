package protocol

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
)

// Команды удалённого сервера.
const (
	VerbGetProducts      = "getproducts"
	VerbGetBasket        = "getbasket"
	VerbAddToBasket      = "addtobasket"
	VerbSetBasket        = "setbasket"
	VerbRemoveFromBasket = "removefrombasket"
	VerbClearBasket      = "clearbasket"
	VerbCreateOrder      = "createorder"
	VerbGetUserOrders    = "getuserorders"
	VerbGetUserReviews   = "getuserreviews"
	VerbAuthorize        = "authorize"
	VerbRegister         = "register"
	VerbGetUsers         = "getusers"
	VerbGetAllStores     = "getallstores"
	VerbDeleteUser       = "deleteuser"
)

// Минимальное число колонок на строку ответа для каждой команды.
// Строка короче минимума считается шумом (битый кадр или старый формат)
// и молча отбрасывается; лишние хвостовые колонки игнорируются.
const (
	minProductFields = 18
	minBasketFields  = 2
	minOrderFields   = 5
	minStoreFields   = 2
	minUserFields    = 2
	minReviewFields  = 6
)

// Client — типизированный каталог команд поверх CommandSender.
// Сам клиент не содержит retry-логики и не кэширует ответы.
type Client struct {
	sender ports.CommandSender
}

func NewClient(sender ports.CommandSender) *Client {
	return &Client{sender: sender}
}

// Raw — отправить готовую командную строку как есть (отладочная ручка).
func (c *Client) Raw(ctx context.Context, command string) (string, error) {
	return c.sender.Send(ctx, command)
}

// Products — полный каталог товаров. Строки с нечитаемым ID отбрасываются.
func (c *Client) Products(ctx context.Context) ([]domain.ProductSnapshot, error) {
	resp, err := c.sender.Send(ctx, Encode(VerbGetProducts))
	if err != nil {
		return nil, err
	}

	var out []domain.ProductSnapshot
	for _, rec := range DecodeLines(resp) {
		if len(rec) < minProductFields {
			continue
		}
		idField, _ := rec.Field(0)
		id, convErr := strconv.Atoi(strings.TrimSpace(idField))
		if convErr != nil || id <= 0 {
			continue
		}
		p := domain.ProductSnapshot{
			ID:              id,
			Name:            rec[1],
			Category:        rec[2],
			Manufacturer:    rec[3],
			Country:         rec[4],
			Description:     rec[5],
			Active:          rec.Bool(6),
			CreatedAt:       rec.Time(7),
			UpdatedAt:       rec.Time(8),
			StoreName:       rec[9],
			StoreAddress:    rec[10],
			City:            rec[11],
			Phone:           rec[12],
			Price:           rec.Decimal(13),
			DiscountPercent: rec.Decimal(14),
			AvailableQty:    rec.Int(15),
			ImageRef:        rec[16],
			StoreID:         rec.Int(17),
		}
		// опциональная хвостовая колонка новых деплоев
		if st, ok := rec.Field(18); ok {
			p.Status = st
		}
		out = append(out, p)
	}
	return out, nil
}

// Basket — содержимое серверной корзины пользователя.
func (c *Client) Basket(ctx context.Context, userID int) (domain.Basket, error) {
	resp, err := c.sender.Send(ctx, Encode(VerbGetBasket, strconv.Itoa(userID)))
	if err != nil {
		return nil, err
	}

	basket := make(domain.Basket)
	for _, rec := range DecodeLines(resp) {
		if len(rec) < minBasketFields {
			continue
		}
		pidField, _ := rec.Field(0)
		qtyField, _ := rec.Field(1)
		pid, pidErr := strconv.Atoi(strings.TrimSpace(pidField))
		qty, qtyErr := strconv.Atoi(strings.TrimSpace(qtyField))
		if pidErr != nil || qtyErr != nil {
			continue
		}
		basket[pid] = qty
	}
	return basket, nil
}

func (c *Client) AddToBasket(ctx context.Context, userID, productID, qty int) error {
	resp, err := c.sender.Send(ctx, Encode(VerbAddToBasket,
		strconv.Itoa(userID), strconv.Itoa(productID), strconv.Itoa(qty)))
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func (c *Client) SetBasket(ctx context.Context, userID, productID, qty int) error {
	resp, err := c.sender.Send(ctx, Encode(VerbSetBasket,
		strconv.Itoa(userID), strconv.Itoa(productID), strconv.Itoa(qty)))
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func (c *Client) RemoveFromBasket(ctx context.Context, userID, productID int) error {
	resp, err := c.sender.Send(ctx, Encode(VerbRemoveFromBasket,
		strconv.Itoa(userID), strconv.Itoa(productID)))
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func (c *Client) ClearBasket(ctx context.Context, userID int) error {
	resp, err := c.sender.Send(ctx, Encode(VerbClearBasket, strconv.Itoa(userID)))
	if err != nil {
		return err
	}
	return expectOK(resp)
}

// CreateOrder — создать заказ на одну позицию. Сумма передаётся строкой
// без экспоненты, как её печатает decimal.
func (c *Client) CreateOrder(ctx context.Context, userID, productID, qty int, lineTotal decimal.Decimal, paymentMethod, deliveryAddress string, storeID int) error {
	resp, err := c.sender.Send(ctx, Encode(VerbCreateOrder,
		strconv.Itoa(userID),
		strconv.Itoa(productID),
		strconv.Itoa(qty),
		lineTotal.String(),
		paymentMethod,
		deliveryAddress,
		strconv.Itoa(storeID)))
	if err != nil {
		return err
	}
	return expectOK(resp)
}

// UserOrders — заказы пользователя. Поля payment/address/storeId —
// хвостовые и опциональные.
func (c *Client) UserOrders(ctx context.Context, userID int) ([]domain.OrderLine, error) {
	resp, err := c.sender.Send(ctx, Encode(VerbGetUserOrders, strconv.Itoa(userID)))
	if err != nil {
		return nil, err
	}

	var out []domain.OrderLine
	for _, rec := range DecodeLines(resp) {
		if len(rec) < minOrderFields {
			continue
		}
		line := domain.OrderLine{
			ID:        rec[0],
			ProductID: rec.Int(1),
			CreatedAt: rec[2],
			Status:    rec[3],
			Total:     rec.Decimal(4),
		}
		if v, ok := rec.Field(5); ok {
			line.PaymentMethod = v
		}
		if v, ok := rec.Field(6); ok {
			line.DeliveryAddress = v
		}
		line.StoreID = rec.Int(7)
		out = append(out, line)
	}
	return out, nil
}

// UserReviews — отзывы пользователя.
func (c *Client) UserReviews(ctx context.Context, userID int) ([]domain.Review, error) {
	resp, err := c.sender.Send(ctx, Encode(VerbGetUserReviews, strconv.Itoa(userID)))
	if err != nil {
		return nil, err
	}

	var out []domain.Review
	for _, rec := range DecodeLines(resp) {
		if len(rec) < minReviewFields {
			continue
		}
		out = append(out, domain.Review{
			ID:        rec[0],
			ProductID: rec.Int(1),
			Title:     rec[2],
			Text:      rec[3],
			Rating:    rec.Int(4),
			CreatedAt: rec[5],
		})
	}
	return out, nil
}

// Authorize — проверка логина/пароля. Ответ "OK" — обычный покупатель
// (role пустая); другая непустая строка — имя роли, опционально
// с "|storeId"; "FAIL"/"ERROR|..." — ошибка.
func (c *Client) Authorize(ctx context.Context, login, passwordHash string) (role string, storeID int, err error) {
	resp, err := c.sender.Send(ctx, Encode(VerbAuthorize, login, passwordHash))
	if err != nil {
		return "", 0, err
	}
	st, err := ParseStatus(resp)
	if err != nil {
		return "", 0, err
	}
	if st.OK {
		return "", 0, nil
	}
	parts := strings.SplitN(st.Payload, FieldDelim, 2)
	role = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		storeID, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return role, storeID, nil
}

// Register — регистрация покупателя (roleID фиксирован, телефон опционален).
func (c *Client) Register(ctx context.Context, login, passwordHash string, roleID int, phone string) error {
	resp, err := c.sender.Send(ctx, Encode(VerbRegister,
		login, passwordHash, strconv.Itoa(roleID), phone))
	if err != nil {
		return err
	}
	return expectOK(resp)
}

// ResolveUserID — поиск ID пользователя по логину через getusers.
// Сравнение логинов регистронезависимое, как у сервера.
// 0 — пользователь не найден.
func (c *Client) ResolveUserID(ctx context.Context, login string) (int, error) {
	resp, err := c.sender.Send(ctx, Encode(VerbGetUsers))
	if err != nil {
		return 0, err
	}
	for _, rec := range DecodeLines(resp) {
		if len(rec) < minUserFields {
			continue
		}
		idField, _ := rec.Field(0)
		id, convErr := strconv.Atoi(strings.TrimSpace(idField))
		if convErr != nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rec[1]), strings.TrimSpace(login)) {
			return id, nil
		}
	}
	return 0, nil
}

// Stores — список магазинов. Колонка статуса всегда последняя: старый
// формат отдаёт 7 колонок, новый — 8.
func (c *Client) Stores(ctx context.Context) ([]domain.Store, error) {
	resp, err := c.sender.Send(ctx, Encode(VerbGetAllStores))
	if err != nil {
		return nil, err
	}

	var out []domain.Store
	for _, rec := range DecodeLines(resp) {
		if len(rec) < minStoreFields {
			continue
		}
		s := domain.Store{
			ID:     rec.Int(0),
			Name:   rec[1],
			Active: rec.Bool(len(rec) - 1),
		}
		if v, ok := rec.Field(2); ok {
			s.Address = v
		}
		if v, ok := rec.Field(3); ok {
			s.City = v
		}
		if v, ok := rec.Field(4); ok {
			s.Phone = v
		}
		if v, ok := rec.Field(5); ok {
			s.LegalPerson = v
		}
		out = append(out, s)
	}
	return out, nil
}

// DeleteUser — удаление аккаунта.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	resp, err := c.sender.Send(ctx, Encode(VerbDeleteUser, strconv.Itoa(userID)))
	if err != nil {
		return err
	}
	return expectOK(resp)
}
