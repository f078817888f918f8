package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	ProductCount int             `json:"product_count"`
	TotalSales   int             `json:"total_sales"`
	SellerSales  *int            `json:"seller_sales,omitempty"` // solo para vendedores: sus propias ventas
	DailyTotal   decimal.Decimal `json:"daily_total"`            // suma de ventas de hoy (UTC)
	MostBought   *TopProductDTO  `json:"most_bought,omitempty"`
	LatestSales  []SaleResponse  `json:"latest_sales"`
}

// TopProductDTO producto más vendido por unidades.
type TopProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int64  `json:"units_sold"`
}
