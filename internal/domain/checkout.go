package domain

// CheckoutRequest — вход шага подтверждения оформления.
type CheckoutRequest struct {
	UserID          int    `json:"-"`
	ProductIDs      []int  `json:"product_ids"`
	PaymentMethod   string `json:"payment_method"`
	DeliveryAddress string `json:"delivery_address"`
}

// ReviewItem — позиция на странице подтверждения: свежий снимок товара
// и количество из корзины (количество из формы не используется).
type ReviewItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}
