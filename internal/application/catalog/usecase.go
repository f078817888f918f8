package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// UseCase lecturas del catálogo para la pantalla del POS y alta de productos.
// El stock solo lo modifica el checkout; aquí únicamente se fija el inicial.
type UseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *UseCase {
	return &UseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListActive productos activos ordenados por nombre, con el nombre de su categoría.
func (uc *UseCase) ListActive(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	out := &dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, toProductResponse(p, names[p.CategoryID]))
	}
	return out, nil
}

// GetByID devuelve el producto (activo o no). nil, nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	var categoryName string
	if p.CategoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, p.CategoryID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			categoryName = c.Name
		}
	}
	out := toProductResponse(p, categoryName)
	return &out, nil
}

// Create da de alta un producto activo. La categoría, si viene, debe existir.
func (uc *UseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	var categoryName string
	if in.CategoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		categoryName = c.Name
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:         uuid.New().String(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Price:      in.Price,
		Stock:      in.Stock,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toProductResponse(p, categoryName)
	return &out, nil
}

func toProductResponse(p *entity.Product, categoryName string) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Price:        p.Price,
		Stock:        p.Stock,
		Active:       p.Active,
	}
}
