package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine — одна строка заказа, как её возвращает getuserorders.
// Протокол не умеет заказ из нескольких позиций: на каждый товар
// создаётся отдельный заказ (createorder).
type OrderLine struct {
	ID              string          `json:"order_id"`
	ProductID       int             `json:"product_id"`
	CreatedAt       string          `json:"created_at"` // строка из протокола, формат на стороне сервера
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total_amount"`
	PaymentMethod   string          `json:"payment,omitempty"`
	DeliveryAddress string          `json:"address,omitempty"`
	StoreID         int             `json:"store_id,omitempty"`
}

// Review — отзыв пользователя о товаре, как его возвращает
// getuserreviews.
type Review struct {
	ID        string `json:"review_id"`
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
	Text      string `json:"review_text"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"` // строка из протокола, формат на стороне сервера
}

// CheckoutLine — результат обработки одной позиции при оформлении.
// Err != nil означает, что заказ по этой позиции не создан; остальные
// позиции это не отменяет.
type CheckoutLine struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Err       error           `json:"-"`
}

// CheckoutResult — итог оформления. Completed выставляется в true, если
// оркестратор дошёл до конца цикла, независимо от ошибок отдельных строк
// (частичное оформление — осознанная политика, а не транзакция).
type CheckoutResult struct {
	Lines      []CheckoutLine  `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Completed  bool            `json:"completed"`
	FinishedAt time.Time       `json:"finished_at"`
}

// FailedProducts — ID позиций, по которым заказ не создан.
func (r CheckoutResult) FailedProducts() []int {
	var ids []int
	for _, l := range r.Lines {
		if l.Err != nil {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}
