package domain

// Basket — отображение productID → количество. Записей с количеством <= 0
// в корзине не бывает: такая запись означает удаление позиции.
type Basket map[int]int

// Count — суммарное количество единиц товара в корзине.
// Для пустой корзины возвращает 0.
func (b Basket) Count() int {
	total := 0
	for _, qty := range b {
		total += qty
	}
	return total
}

// Clone — копия корзины (map в Go передаётся по ссылке).
func (b Basket) Clone() Basket {
	out := make(Basket, len(b))
	for id, qty := range b {
		out[id] = qty
	}
	return out
}
