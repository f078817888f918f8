package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/internal/application/sales"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/pdf"
)

func TestGenerate_DevuelvePDF(t *testing.T) {
	g := pdf.NewReceiptGenerator("Tienda Demo")

	doc, err := g.Generate(sales.Receipt{
		SaleID:     "9b1d2c3e-0000-0000-0000-000000000001",
		CreatedAt:  time.Date(2026, 5, 10, 14, 30, 0, 0, time.UTC),
		SellerName: "Ana Gómez",
		Lines: []sales.ReceiptLine{
			{ProductName: "Café", Quantity: 2, UnitPrice: decimal.RequireFromString("3500"), Subtotal: decimal.RequireFromString("7000")},
			{ProductName: "Pan", Quantity: 1, UnitPrice: decimal.RequireFromString("1200.50"), Subtotal: decimal.RequireFromString("1200.50")},
		},
		Total: decimal.RequireFromString("8200.50"),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestMoney_FormatoEspanol(t *testing.T) {
	g := pdf.NewReceiptGenerator("x")

	assert.Equal(t, "$1.234.567,89", g.Money(decimal.RequireFromString("1234567.89")))
}
