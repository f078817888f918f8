package dto

import "github.com/shopspring/decimal"

// ProductResponse producto del catálogo visible en el POS.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
	Active       bool            `json:"active"`
}

// CreateProductRequest entrada para crear un producto (solo admin).
type CreateProductRequest struct {
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
}

// ProductListResponse catálogo visible en el POS.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}
