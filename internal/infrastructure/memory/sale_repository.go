package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

var errSaleOutsideUnit = errors.New("las ventas solo se registran dentro de una unidad de checkout")

// SaleRepo lectura del libro de ventas. Las escrituras solo ocurren vía TxRunner.RunCheckout.
type SaleRepo struct {
	s *Store
}

// NewSaleRepository construye el repositorio de ventas.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

// Create fuera de una unidad de checkout no está permitido.
func (r *SaleRepo) Create(context.Context, *entity.Sale) error { return errSaleOutsideUnit }

// CreateItem fuera de una unidad de checkout no está permitido.
func (r *SaleRepo) CreateItem(context.Context, *entity.SaleItem) error { return errSaleOutsideUnit }

// GetByID obtiene una venta con sus líneas (nil si no existe).
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.saleIndex[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(r.s.sales[i]), nil
}

// List devuelve ventas de la más reciente a la más antigua. limit <= 0 = sin límite.
func (r *SaleRepo) List(_ context.Context, sellerID string, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	matched := make([]*entity.Sale, 0, len(r.s.sales))
	for i := len(r.s.sales) - 1; i >= 0; i-- {
		s := r.s.sales[i]
		if sellerID == "" || s.SellerID == sellerID {
			matched = append(matched, cloneSale(s))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []*entity.Sale{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}
