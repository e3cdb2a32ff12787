package ports

import (
	"context"

	"github.com/kursovoi/storefront/internal/domain"
)

// AnalyticsRepository — отчётное SQL-хранилище для административной
// аналитики. Внешний сосед ядра: запись фактов fail-soft, чтение —
// только из admin-эндпоинтов.
type AnalyticsRepository interface {
	RecordOrder(ctx context.Context, fact *domain.OrderFact) error
	SalesByStore(ctx context.Context) ([]domain.StoreSales, error)
	TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error)
}
