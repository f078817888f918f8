package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult total y cantidad de ventas de un día calendario (UTC).
type DailySalesResult struct {
	Day   time.Time
	Total decimal.Decimal
	Count int
}

// SellerSalesResult total y cantidad de ventas de un vendedor.
type SellerSalesResult struct {
	SellerID   string
	SellerName string
	Total      decimal.Decimal
	Count      int
}

// TopProductResult producto con mayor cantidad vendida.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int64
}

// ReportRepository consultas de solo lectura sobre el libro de ventas.
// Consistencia: lectura después de commit, sin contrato adicional.
type ReportRepository interface {
	// DailyTotals agrupa por día calendario en [from, to), del día más reciente al más antiguo.
	DailyTotals(ctx context.Context, from, to time.Time) ([]DailySalesResult, error)
	// SellerTotals agrupa por vendedor en [from, to), ordenado por nombre de vendedor.
	SellerTotals(ctx context.Context, from, to time.Time) ([]SellerSalesResult, error)
	// SalesSummary total y cantidad de ventas en [from, to); sellerID vacío = todos.
	SalesSummary(ctx context.Context, sellerID string, from, to time.Time) (decimal.Decimal, int, error)
	// TopProduct devuelve el producto más vendido por unidades, o nil si no hay ventas.
	TopProduct(ctx context.Context) (*TopProductResult, error)
}
