// Пакет postgres — отчётное хранилище для административной аналитики.
// Ядро магазина сюда только пишет факты заказов (fail-soft); чтение
// выполняют admin-эндпоинты. Само состояние корзин и заказов живёт на
// UDP-сервере, эта база — производная проекция.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
)

var _ ports.AnalyticsRepository = (*AnalyticsRepository)(nil)

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// RecordOrder — вставка факта заказа. Идемпотентности нет: повторная
// попытка оформления создаёт новый заказ и новый факт.
func (r *AnalyticsRepository) RecordOrder(ctx context.Context, fact *domain.OrderFact) error {
	const q = `
		INSERT INTO order_facts (user_id, product_id, store_id, quantity, total, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, q,
		fact.UserID, fact.ProductID, fact.StoreID, fact.Quantity,
		fact.Total.String(), fact.PlacedAt)
	if err != nil {
		return fmt.Errorf("insert order fact: %w", err)
	}
	return nil
}

// SalesByStore — число заказов и выручка в разрезе магазинов.
func (r *AnalyticsRepository) SalesByStore(ctx context.Context) ([]domain.StoreSales, error) {
	const q = `
		SELECT store_id, COUNT(*), COALESCE(SUM(total), 0)::text
		FROM order_facts
		GROUP BY store_id
		ORDER BY SUM(total) DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sales by store: %w", err)
	}
	defer rows.Close()

	var out []domain.StoreSales
	for rows.Next() {
		var (
			s       domain.StoreSales
			revenue string
		)
		if err := rows.Scan(&s.StoreID, &s.Orders, &revenue); err != nil {
			return nil, fmt.Errorf("scan store sales: %w", err)
		}
		s.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, fmt.Errorf("parse revenue: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TopProducts — самые продаваемые товары по выручке.
func (r *AnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}

	const q = `
		SELECT product_id, COALESCE(SUM(quantity), 0), COALESCE(SUM(total), 0)::text
		FROM order_facts
		GROUP BY product_id
		ORDER BY SUM(total) DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductSales
	for rows.Next() {
		var (
			p       domain.ProductSales
			revenue string
		)
		if err := rows.Scan(&p.ProductID, &p.Units, &revenue); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		p.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, fmt.Errorf("parse revenue: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
