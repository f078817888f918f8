package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner unidad de trabajo en memoria: los cambios se acumulan en la unidad y se aplican
// juntos al Store solo si fn termina sin error. Los bloqueos por producto se liberan siempre.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunCheckout ejecuta fn con repos atados a una unidad nueva; commit si fn no falla.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	u := &unit{
		s:      r.s,
		locked: make(map[string]struct{}),
		stock:  make(map[string]int64),
	}
	defer u.release()

	if err := fn(&unitProductRepo{ProductRepo: NewProductRepository(r.s), u: u},
		&unitSaleRepo{SaleRepo: NewSaleRepository(r.s), u: u}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit unit: %w", err)
	}
	return u.commit()
}

// unit cambios pendientes de una unidad de checkout.
type unit struct {
	s        *Store
	locked   map[string]struct{}
	releases []func()
	stock    map[string]int64 // stock resultante por producto
	sales    []*entity.Sale
}

func (u *unit) release() {
	for i := len(u.releases) - 1; i >= 0; i-- {
		u.releases[i]()
	}
	u.releases = nil
}

func (u *unit) findSale(id string) *entity.Sale {
	for _, s := range u.sales {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// commit valida todo antes de mutar el Store; si algo falla, el Store queda intacto.
func (u *unit) commit() error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for id, stock := range u.stock {
		if _, ok := u.s.products[id]; !ok {
			return fmt.Errorf("commit unit: producto %s: %w", id, domain.ErrNotFound)
		}
		if stock < 0 {
			return fmt.Errorf("commit unit: stock negativo para %s", id)
		}
	}
	for _, sale := range u.sales {
		if _, dup := u.s.saleIndex[sale.ID]; dup {
			return fmt.Errorf("commit unit: venta %s: %w", sale.ID, domain.ErrDuplicate)
		}
		if len(sale.Items) == 0 {
			return fmt.Errorf("commit unit: venta %s sin líneas", sale.ID)
		}
	}

	for id, stock := range u.stock {
		u.s.products[id].Stock = stock
	}
	for _, sale := range u.sales {
		u.s.saleIndex[sale.ID] = len(u.s.sales)
		u.s.sales = append(u.s.sales, sale)
	}
	return nil
}

// unitProductRepo ProductRepository atado a la unidad: lee el stock pendiente y acumula descuentos.
type unitProductRepo struct {
	*ProductRepo
	u *unit
}

func (r *unitProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.ProductRepo.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if stock, ok := r.u.stock[id]; ok {
		p.Stock = stock
	}
	return p, nil
}

func (r *unitProductRepo) LockForCheckout(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := r.u.locked[id]; !ok {
			pending = append(pending, id)
		}
	}
	if len(pending) > 0 {
		release, err := r.u.s.locks.Acquire(ctx, pending...)
		if err != nil {
			return nil, fmt.Errorf("lock products: %w", err)
		}
		r.u.releases = append(r.u.releases, release)
		for _, id := range pending {
			r.u.locked[id] = struct{}{}
		}
	}

	out := make(map[string]*entity.Product, len(ids))
	r.u.s.mu.RLock()
	defer r.u.s.mu.RUnlock()
	for _, id := range ids {
		p, ok := r.u.s.products[id]
		if !ok {
			continue
		}
		c := cloneProduct(p)
		if stock, ok := r.u.stock[id]; ok {
			c.Stock = stock
		}
		out[id] = c
	}
	return out, nil
}

func (r *unitProductRepo) DecrementStock(_ context.Context, id string, qty int64) error {
	if qty <= 0 {
		return &domain.InvalidQuantityError{ProductID: id, Quantity: qty}
	}
	if _, ok := r.u.locked[id]; !ok {
		return fmt.Errorf("decrement stock: producto %s no bloqueado en la unidad", id)
	}
	current, ok := r.u.stock[id]
	if !ok {
		r.u.s.mu.RLock()
		p, exists := r.u.s.products[id]
		if exists {
			current = p.Stock
		}
		r.u.s.mu.RUnlock()
		if !exists {
			return fmt.Errorf("decrement stock %s: %w", id, domain.ErrNotFound)
		}
	}
	if current < qty {
		return &domain.InsufficientStockError{ProductID: id, Requested: qty, Available: current}
	}
	r.u.stock[id] = current - qty
	return nil
}

// unitSaleRepo SaleRepository atado a la unidad: acumula cabecera y líneas hasta el commit.
type unitSaleRepo struct {
	*SaleRepo
	u *unit
}

func (r *unitSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale == nil || sale.ID == "" || sale.SellerID == "" {
		return fmt.Errorf("insert sale: %w", domain.ErrInvalidInput)
	}
	if r.u.findSale(sale.ID) != nil {
		return domain.ErrDuplicate
	}
	header := *sale
	header.Items = nil
	r.u.sales = append(r.u.sales, &header)
	return nil
}

func (r *unitSaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	if item == nil || item.ID == "" || item.Quantity <= 0 {
		return fmt.Errorf("insert sale item: %w", domain.ErrInvalidInput)
	}
	sale := r.u.findSale(item.SaleID)
	if sale == nil {
		return fmt.Errorf("insert sale item: venta %s no registrada en la unidad", item.SaleID)
	}
	sale.Items = append(sale.Items, *item)
	return nil
}
