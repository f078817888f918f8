package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/sales"
	"github.com/jhoicas/inventario-pos/internal/domain"
	domcheckout "github.com/jhoicas/inventario-pos/internal/domain/checkout"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
)

var (
	admin  = entity.Actor{UserID: "adm", Role: entity.RoleAdmin}
	ana    = entity.Actor{UserID: "ana", Role: entity.RoleVendedor}
	carlos = entity.Actor{UserID: "carlos", Role: entity.RoleVendedor}
)

type receiptSpy struct{ last sales.Receipt }

func (r *receiptSpy) Generate(rc sales.Receipt) ([]byte, error) {
	r.last = rc
	return []byte("%PDF-fake"), nil
}

type env struct {
	uc       *sales.UseCase
	checkout *checkout.UseCase
	receipts *receiptSpy
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	users := memory.NewUserRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Café", Price: decimal.RequireFromString("3.50"), Stock: 100, Active: true}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "ana", Username: "ana", Name: "Ana Gómez", Role: entity.RoleVendedor, Active: true}))
	spy := &receiptSpy{}
	saleRepo := memory.NewSaleRepository(store)
	return &env{
		uc:       sales.NewUseCase(saleRepo, products, users, spy),
		checkout: checkout.NewUseCase(memory.NewTxRunner(store), saleRepo),
		receipts: spy,
	}
}

func (e *env) sell(t *testing.T, seller string, qty int64) *entity.Sale {
	t.Helper()
	s, err := e.checkout.Checkout(context.Background(), seller, []domcheckout.Line{{ProductID: "p1", Quantity: qty}})
	require.NoError(t, err)
	return s
}

func TestList_VendedorSoloVeSusVentas(t *testing.T) {
	e := newEnv(t)
	e.sell(t, "ana", 1)
	e.sell(t, "carlos", 2)
	last := e.sell(t, "ana", 3)

	own, err := e.uc.List(context.Background(), ana, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, own.Sales, 2)
	assert.Equal(t, last.ID, own.Sales[0].ID)
	assert.Equal(t, "Café", own.Sales[0].Items[0].ProductName)
	assert.Equal(t, 20, own.Page.Limit)

	all, err := e.uc.List(context.Background(), admin, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, all.Sales, 3)
	assert.Equal(t, 100, all.Page.Limit)
}

func TestGet_VentaDeOtroVendedorEsForbidden(t *testing.T) {
	e := newEnv(t)
	s := e.sell(t, "ana", 1)

	_, err := e.uc.Get(context.Background(), carlos, s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := e.uc.Get(context.Background(), admin, s.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.50").Equal(got.Total))

	_, err = e.uc.Get(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceipt_ResuelveNombresYSubtotales(t *testing.T) {
	e := newEnv(t)
	s := e.sell(t, "ana", 4)

	pdf, err := e.uc.Receipt(context.Background(), ana, s.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	rc := e.receipts.last
	assert.Equal(t, s.ID, rc.SaleID)
	assert.Equal(t, "Ana Gómez", rc.SellerName)
	require.Len(t, rc.Lines, 1)
	assert.Equal(t, "Café", rc.Lines[0].ProductName)
	assert.True(t, decimal.NewFromInt(14).Equal(rc.Lines[0].Subtotal))
	assert.True(t, decimal.NewFromInt(14).Equal(rc.Total))
}
