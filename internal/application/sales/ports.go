package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptGenerator genera la representación imprimible (PDF) de una venta.
type ReceiptGenerator interface {
	Generate(r Receipt) ([]byte, error)
}

// Receipt datos del recibo, ya resueltos (nombres en lugar de IDs).
type Receipt struct {
	SaleID     string
	CreatedAt  time.Time
	SellerName string
	Lines      []ReceiptLine
	Total      decimal.Decimal
}

// ReceiptLine línea del recibo.
type ReceiptLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
