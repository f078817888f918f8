package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo libro de ventas sobre PostgreSQL. Solo inserta y lee; la tabla rechaza UPDATE/DELETE por trigger.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador del libro de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, seller_id, created_at, total) VALUES ($1, $2, $3, $4)`,
		s.ID, s.SellerID, s.CreatedAt, s.Total,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas (nil si no existe).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx,
		`SELECT id, seller_id, created_at, total FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.SellerID, &s.CreatedAt, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	sales := []*entity.Sale{&s}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return &s, nil
}

// List devuelve ventas de la más reciente a la más antigua; sellerID vacío = todas. limit <= 0 = sin límite.
func (r *SaleRepo) List(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Sale, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, seller_id, created_at, total
		FROM sales
		WHERE ($1 = '' OR seller_id::text = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		sellerID, lim, max(offset, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list := []*entity.Sale{}
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SellerID, &s.CreatedAt, &s.Total); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todas las ventas con una sola consulta, en orden de inserción.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}
