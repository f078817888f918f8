package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// SaleRepository puerto del libro de ventas. Es append-only: no existe Update ni Delete,
// los reportes dependen de que una venta confirmada nunca cambie.
type SaleRepository interface {
	// Create inserta la cabecera de la venta.
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateItem inserta una línea; debe ejecutarse en la misma unidad atómica que Create.
	CreateItem(ctx context.Context, item *entity.SaleItem) error

	// GetByID devuelve la venta con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas (con líneas) de la más reciente a la más antigua.
	// sellerID vacío = todos los vendedores.
	List(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Sale, error)
}
