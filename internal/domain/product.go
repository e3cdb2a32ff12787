package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot — снимок товара из ответа getproducts.
// Живёт только в рамках одного запроса: цены и остатки каждый раз
// перечитываются с сервера, клиентского кэша нет.
type ProductSnapshot struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Manufacturer    string          `json:"manufacturer"`
	Country         string          `json:"country"`
	Description     string          `json:"description"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	StoreName       string          `json:"store_name"`
	StoreAddress    string          `json:"store_address"`
	City            string          `json:"city"`
	Phone           string          `json:"phone"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	AvailableQty    int             `json:"available_qty"`
	ImageRef        string          `json:"image_ref"`
	StoreID         int             `json:"store_id"`
	// Status — опциональная хвостовая колонка (новые деплои сервера).
	Status string `json:"status,omitempty"`
}

// EffectivePrice — цена с учётом скидки: Price × (1 − DiscountPercent/100).
func (p ProductSnapshot) EffectivePrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountPercent)
}
