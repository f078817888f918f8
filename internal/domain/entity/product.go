package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con un único pool de stock.
// Stock solo lo modifica el motor de checkout; precio y metadatos, la administración.
type Product struct {
	ID         string
	CategoryID string
	Name       string
	Price      decimal.Decimal // precio de venta vigente
	Stock      int64           // unidades disponibles, nunca negativo
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Sellable indica si el producto puede venderse en el POS.
func (p *Product) Sellable() bool {
	return p != nil && p.Active
}
