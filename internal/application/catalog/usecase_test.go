package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/internal/application/catalog"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
)

func newCatalog(t *testing.T) *catalog.UseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	categories := memory.NewCategoryRepository(store)
	products := memory.NewProductRepository(store)
	require.NoError(t, categories.Create(ctx, &entity.Category{ID: "c1", Name: "Bebidas"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", CategoryID: "c1", Name: "Té", Price: decimal.NewFromInt(2), Stock: 3, Active: true}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Arepa", Price: decimal.NewFromInt(1), Stock: 9, Active: true}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p3", Name: "Descontinuado", Price: decimal.NewFromInt(1), Active: false}))
	return catalog.NewUseCase(products, categories)
}

func TestListActive_OrdenadoPorNombreConCategoria(t *testing.T) {
	uc := newCatalog(t)

	out, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Products, 2, "los inactivos no se listan")
	assert.Equal(t, "Arepa", out.Products[0].Name)
	assert.Equal(t, "", out.Products[0].CategoryName)
	assert.Equal(t, "Té", out.Products[1].Name)
	assert.Equal(t, "Bebidas", out.Products[1].CategoryName)
}

func TestGetByID_Inexistente(t *testing.T) {
	uc := newCatalog(t)

	out, err := uc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = uc.GetByID(context.Background(), "p3")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, out.Active)
}

func TestCreate_SoloAdmin(t *testing.T) {
	uc := newCatalog(t)
	in := dto.CreateProductRequest{Name: "Pan", CategoryID: "c1", Price: decimal.NewFromInt(4), Stock: 10}

	_, err := uc.Create(context.Background(), entity.Actor{UserID: "v", Role: entity.RoleVendedor}, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Create(context.Background(), entity.Actor{UserID: "a", Role: entity.RoleAdmin}, in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Bebidas", out.CategoryName)
	assert.True(t, out.Active)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newCatalog(t)
	admin := entity.Actor{UserID: "a", Role: entity.RoleAdmin}

	_, err := uc.Create(context.Background(), admin, dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), admin, dto.CreateProductRequest{Name: "X", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), admin, dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), admin, dto.CreateProductRequest{Name: "X", CategoryID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
