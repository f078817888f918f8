package dto

import "github.com/shopspring/decimal"

// ReportRangeRequest parámetros de GET /api/reports/*.
type ReportRangeRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto hace 30 días
	EndDate   string `query:"end_date"`   // YYYY-MM-DD inclusive; por defecto hoy
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DailySalesDTO total y cantidad de ventas de un día.
type DailySalesDTO struct {
	Day   string          `json:"day"` // YYYY-MM-DD (UTC)
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// SellerSalesDTO total y cantidad de ventas de un vendedor.
type SellerSalesDTO struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}

// DailyReportDTO respuesta de GET /api/reports/daily.
type DailyReportDTO struct {
	Period PeriodDTO       `json:"period"`
	Days   []DailySalesDTO `json:"days"`
}

// SellerReportDTO respuesta de GET /api/reports/sellers.
type SellerReportDTO struct {
	Period  PeriodDTO        `json:"period"`
	Sellers []SellerSalesDTO `json:"sellers"`
}
