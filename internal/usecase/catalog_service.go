package usecase

import (
	"context"
	"strings"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/internal/protocol"
)

// CatalogService — витрина: товары и магазины. Все чтения fail-soft —
// недоступный сервер выглядит как пустой каталог, не как ошибка 500.
type CatalogService struct {
	client *protocol.Client
	log    ports.Logger
}

func NewCatalogService(client *protocol.Client, log ports.Logger) *CatalogService {
	return &CatalogService{client: client, log: log}
}

// Products — полный каталог.
func (s *CatalogService) Products(ctx context.Context) []domain.ProductSnapshot {
	products, err := s.client.Products(ctx)
	if err != nil {
		s.log.Warnf(ctx, "catalog: products fetch failed: %v", err)
		return nil
	}
	return products
}

// Product — товар по ID; ok == false, если его нет в каталоге.
func (s *CatalogService) Product(ctx context.Context, id int) (domain.ProductSnapshot, bool) {
	for _, p := range s.Products(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return domain.ProductSnapshot{}, false
}

// Stores — активные магазины; query фильтрует по имени, адресу и городу.
func (s *CatalogService) Stores(ctx context.Context, query string) []domain.Store {
	stores, err := s.client.Stores(ctx)
	if err != nil {
		s.log.Warnf(ctx, "catalog: stores fetch failed: %v", err)
		return nil
	}

	query = strings.TrimSpace(strings.ToLower(query))
	var out []domain.Store
	for _, st := range stores {
		// покупателю показываются только активные магазины
		if !st.Active {
			continue
		}
		if query != "" && !storeMatches(st, query) {
			continue
		}
		out = append(out, st)
	}
	return out
}

// Store — активный магазин по ID.
func (s *CatalogService) Store(ctx context.Context, id int) (domain.Store, bool) {
	for _, st := range s.Stores(ctx, "") {
		if st.ID == id {
			return st, true
		}
	}
	return domain.Store{}, false
}

func storeMatches(st domain.Store, query string) bool {
	return strings.Contains(strings.ToLower(st.Name), query) ||
		strings.Contains(strings.ToLower(st.Address), query) ||
		strings.Contains(strings.ToLower(st.City), query)
}
