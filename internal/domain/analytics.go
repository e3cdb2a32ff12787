package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderFact — строка отчётной таблицы: один созданный заказ.
type OrderFact struct {
	UserID    int
	ProductID int
	StoreID   int
	Quantity  int
	Total     decimal.Decimal
	PlacedAt  time.Time
}

// StoreSales — агрегат продаж по магазину.
type StoreSales struct {
	StoreID int             `json:"store_id"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductSales — агрегат продаж по товару.
type ProductSales struct {
	ProductID int             `json:"product_id"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}
