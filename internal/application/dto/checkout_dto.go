package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// CheckoutItemRequest línea de la canasta.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CheckoutRequest body para POST /api/pos/checkout.
// El vendedor se toma del token, nunca del body.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// SaleItemResponse línea de una venta confirmada.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta confirmada con sus líneas.
type SaleResponse struct {
	ID        string             `json:"id"`
	SellerID  string             `json:"seller_id"`
	CreatedAt time.Time          `json:"created_at"`
	Total     decimal.Decimal    `json:"total"`
	Items     []SaleItemResponse `json:"items"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Page  PageResponse   `json:"page"`
	Sales []SaleResponse `json:"sales"`
}

// NewSaleResponse convierte la entidad en DTO. productNames es opcional (nil = sin nombres).
func NewSaleResponse(sale *entity.Sale, productNames map[string]string) SaleResponse {
	resp := SaleResponse{
		ID:        sale.ID,
		SellerID:  sale.SellerID,
		CreatedAt: sale.CreatedAt,
		Total:     sale.Total,
		Items:     make([]SaleItemResponse, 0, len(sale.Items)),
	}
	for _, it := range sale.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: productNames[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return resp
}
