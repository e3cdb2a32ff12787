package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice — цена после скидки: price × (1 − discount/100).
// Скидка задаётся в процентных пунктах (10 = 10%), не долей.
func EffectivePrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))
}

// FormatAmount — сумма для отображения: максимум два знака после запятой,
// хвостовые нули (и ".00" целиком) отбрасываются. Явного округления в
// расчётах нет — форматирование применяется только на выводе.
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
