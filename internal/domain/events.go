package domain

import "time"

// OrderPlacedEvent — факт успешно созданного заказа (одна позиция).
// Сумма сериализуется строкой, чтобы не терять десятичную точность.
type OrderPlacedEvent struct {
	UserID        int       `json:"user_id"`
	ProductID     int       `json:"product_id"`
	Quantity      int       `json:"quantity"`
	LineTotal     string    `json:"line_total"`
	PaymentMethod string    `json:"payment_method"`
	StoreID       int       `json:"store_id"`
	PlacedAt      time.Time `json:"placed_at"`
}
