package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta confirmada. Inmutable una vez registrada.
type Sale struct {
	ID        string
	SellerID  string
	CreatedAt time.Time
	Total     decimal.Decimal
	Items     []SaleItem
}

// SaleItem línea de una venta. UnitPrice es una foto del precio al momento del checkout.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal devuelve Quantity * UnitPrice.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
