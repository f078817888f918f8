package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones atadas a una transacción de checkout respetan el bloqueo de LockForCheckout.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)

	// LockForCheckout obtiene acceso exclusivo a los productos indicados, en orden ascendente de ID,
	// y los devuelve indexados por ID. Los IDs inexistentes simplemente no aparecen en el mapa.
	// El bloqueo dura hasta que termina la unidad atómica (commit o rollback).
	LockForCheckout(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// DecrementStock resta qty al stock. Nunca deja el stock en negativo.
	DecrementStock(ctx context.Context, id string, qty int64) error
}
