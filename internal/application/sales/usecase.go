// Package sales expone el libro de ventas para consulta: listado, detalle y recibo.
package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// UseCase consultas sobre ventas confirmadas.
// El administrador ve todas; un vendedor solo las propias.
type UseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	receipts    ReceiptGenerator
}

// NewUseCase construye el caso de uso. receipts puede ser nil si no se exponen recibos.
func NewUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository,
	userRepo repository.UserRepository, receipts ReceiptGenerator) *UseCase {
	return &UseCase{saleRepo: saleRepo, productRepo: productRepo, userRepo: userRepo, receipts: receipts}
}

// List devuelve las ventas visibles para el actor, de la más reciente a la más antigua.
func (uc *UseCase) List(ctx context.Context, actor entity.Actor, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sellerID := actor.UserID
	if actor.IsAdmin() {
		sellerID = ""
	}
	list, err := uc.saleRepo.List(ctx, sellerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx, list...)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
		Sales: make([]dto.SaleResponse, 0, len(list)),
	}
	for _, s := range list {
		out.Sales = append(out.Sales, dto.NewSaleResponse(s, names))
	}
	return out, nil
}

// Get devuelve una venta. ErrNotFound si no existe; ErrForbidden si es de otro vendedor.
func (uc *UseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.SaleResponse, error) {
	sale, err := uc.visibleSale(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx, sale)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSaleResponse(sale, names)
	return &resp, nil
}

// Receipt genera el PDF del recibo de la venta.
func (uc *UseCase) Receipt(ctx context.Context, actor entity.Actor, id string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, fmt.Errorf("receipt: generador no configurado")
	}
	sale, err := uc.visibleSale(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	names, err := uc.productNames(ctx, sale)
	if err != nil {
		return nil, err
	}
	sellerName := sale.SellerID
	seller, err := uc.userRepo.GetByID(ctx, sale.SellerID)
	if err != nil {
		return nil, err
	}
	if seller != nil {
		sellerName = seller.Name
	}

	r := Receipt{
		SaleID:     sale.ID,
		CreatedAt:  sale.CreatedAt,
		SellerName: sellerName,
		Total:      sale.Total,
		Lines:      make([]ReceiptLine, 0, len(sale.Items)),
	}
	for _, it := range sale.Items {
		name := names[it.ProductID]
		if name == "" {
			name = it.ProductID
		}
		r.Lines = append(r.Lines, ReceiptLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return uc.receipts.Generate(r)
}

func (uc *UseCase) visibleSale(ctx context.Context, actor entity.Actor, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && sale.SellerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// productNames resuelve el nombre de cada producto referenciado (una consulta por producto distinto).
func (uc *UseCase) productNames(ctx context.Context, list ...*entity.Sale) (map[string]string, error) {
	names := make(map[string]string)
	for _, s := range list {
		for _, it := range s.Items {
			if _, ok := names[it.ProductID]; ok {
				continue
			}
			p, err := uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			names[it.ProductID] = ""
			if p != nil {
				names[it.ProductID] = p.Name
			}
		}
	}
	return names, nil
}
