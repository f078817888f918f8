package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var errOutsideUnit = errors.New("LockForCheckout requiere una unidad de checkout (TxRunner.RunCheckout)")

// ProductRepo implementación de ProductRepository sobre el Store (fuera de una unidad de checkout).
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio de productos.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("insert product: %w", domain.ErrInvalidInput)
	}
	if product.Stock < 0 || product.Price.IsNegative() {
		return fmt.Errorf("insert product %s: %w", product.ID, domain.ErrInvalidInput)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneProduct(r.s.products[id]), nil
}

// ListActive lista los productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if p.Active {
			out = append(out, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Count cuenta todos los productos del catálogo.
func (r *ProductRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products), nil
}

// LockForCheckout solo tiene sentido dentro de una unidad de checkout.
func (r *ProductRepo) LockForCheckout(context.Context, []string) (map[string]*entity.Product, error) {
	return nil, errOutsideUnit
}

// DecrementStock descuenta stock fuera de un checkout, serializado con el bloqueo del producto.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int64) error {
	if qty <= 0 {
		return &domain.InvalidQuantityError{ProductID: id, Quantity: qty}
	}
	release, err := r.s.locks.Acquire(ctx, id)
	if err != nil {
		return fmt.Errorf("lock product %s: %w", id, err)
	}
	defer release()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("decrement stock %s: %w", id, domain.ErrNotFound)
	}
	if p.Stock < qty {
		return &domain.InsufficientStockError{ProductID: id, Requested: qty, Available: p.Stock}
	}
	p.Stock -= qty
	return nil
}
