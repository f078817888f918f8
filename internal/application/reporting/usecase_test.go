package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/reporting"
	"github.com/jhoicas/inventario-pos/internal/domain"
	domcheckout "github.com/jhoicas/inventario-pos/internal/domain/checkout"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
)

type env struct {
	reports *reporting.UseCase
	store   *memory.Store
	clock   time.Time
}

func newEnv(t *testing.T, clock time.Time) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	users := memory.NewUserRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Pan", Price: decimal.NewFromInt(2), Stock: 1000, Active: true}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Leche", Price: decimal.NewFromInt(5), Stock: 1000, Active: true}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "ana", Username: "ana", Name: "Ana", Role: entity.RoleVendedor, Active: true}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "beto", Username: "beto", Name: "Beto", Role: entity.RoleVendedor, Active: true}))

	uc := reporting.NewUseCase(memory.NewReportRepository(store), memory.NewSaleRepository(store), products).
		WithClock(func() time.Time { return clock })
	return &env{reports: uc, store: store, clock: clock}
}

func (e *env) sellAt(t *testing.T, at time.Time, seller string, lines ...domcheckout.Line) {
	t.Helper()
	uc := checkout.NewUseCase(memory.NewTxRunner(e.store), memory.NewSaleRepository(e.store),
		checkout.WithClock(func() time.Time { return at }))
	_, err := uc.Checkout(context.Background(), seller, lines)
	require.NoError(t, err)
}

func TestDaily_AgrupaPorDiaDelMasRecienteAlMasAntiguo(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	e := newEnv(t, now)
	e.sellAt(t, now.AddDate(0, 0, -1), "ana", domcheckout.Line{ProductID: "p1", Quantity: 1})
	e.sellAt(t, now.AddDate(0, 0, -1).Add(time.Hour), "beto", domcheckout.Line{ProductID: "p2", Quantity: 1})
	e.sellAt(t, now, "ana", domcheckout.Line{ProductID: "p1", Quantity: 3})
	e.sellAt(t, now.AddDate(0, 0, -60), "ana", domcheckout.Line{ProductID: "p1", Quantity: 1})

	rep, err := e.reports.Daily(context.Background(), dto.ReportRangeRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-04-10", rep.Period.StartDate)
	assert.Equal(t, "2026-05-10", rep.Period.EndDate)
	require.Len(t, rep.Days, 2)
	assert.Equal(t, "2026-05-10", rep.Days[0].Day)
	assert.True(t, decimal.NewFromInt(6).Equal(rep.Days[0].Total))
	assert.Equal(t, "2026-05-09", rep.Days[1].Day)
	assert.Equal(t, 2, rep.Days[1].Count)
	assert.True(t, decimal.NewFromInt(7).Equal(rep.Days[1].Total))
}

func TestBySeller_OrdenaPorNombre(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	e := newEnv(t, now)
	e.sellAt(t, now, "beto", domcheckout.Line{ProductID: "p2", Quantity: 2})
	e.sellAt(t, now, "ana", domcheckout.Line{ProductID: "p1", Quantity: 1})
	e.sellAt(t, now, "ana", domcheckout.Line{ProductID: "p1", Quantity: 1})

	rep, err := e.reports.BySeller(context.Background(), dto.ReportRangeRequest{StartDate: "2026-05-10", EndDate: "2026-05-10"})
	require.NoError(t, err)
	require.Len(t, rep.Sellers, 2)
	assert.Equal(t, "Ana", rep.Sellers[0].SellerName)
	assert.Equal(t, 2, rep.Sellers[0].Count)
	assert.True(t, decimal.NewFromInt(4).Equal(rep.Sellers[0].Total))
	assert.Equal(t, "Beto", rep.Sellers[1].SellerName)
	assert.True(t, decimal.NewFromInt(10).Equal(rep.Sellers[1].Total))
}

func TestDaily_RangoInvalido(t *testing.T) {
	e := newEnv(t, time.Now())

	_, err := e.reports.Daily(context.Background(), dto.ReportRangeRequest{StartDate: "2026-05-10", EndDate: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.reports.Daily(context.Background(), dto.ReportRangeRequest{StartDate: "10/05/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_ResumenSegunRol(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	e := newEnv(t, now)
	e.sellAt(t, now.AddDate(0, 0, -2), "beto", domcheckout.Line{ProductID: "p2", Quantity: 1})
	e.sellAt(t, now, "ana", domcheckout.Line{ProductID: "p1", Quantity: 4})
	e.sellAt(t, now, "beto", domcheckout.Line{ProductID: "p1", Quantity: 1}, domcheckout.Line{ProductID: "p2", Quantity: 1})

	seller, err := e.reports.Dashboard(context.Background(), entity.Actor{UserID: "ana", Role: entity.RoleVendedor})
	require.NoError(t, err)
	assert.Equal(t, 2, seller.ProductCount)
	assert.Equal(t, 3, seller.TotalSales)
	require.NotNil(t, seller.SellerSales)
	assert.Equal(t, 1, *seller.SellerSales)
	assert.True(t, decimal.NewFromInt(15).Equal(seller.DailyTotal), "daily=%s", seller.DailyTotal)
	assert.Len(t, seller.LatestSales, 3)
	require.NotNil(t, seller.MostBought)
	assert.Equal(t, "Pan", seller.MostBought.ProductName)
	assert.Equal(t, int64(5), seller.MostBought.UnitsSold)

	adm, err := e.reports.Dashboard(context.Background(), entity.Actor{UserID: "adm", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, adm.SellerSales)
}

func TestDashboard_SinVentas(t *testing.T) {
	e := newEnv(t, time.Now())

	d, err := e.reports.Dashboard(context.Background(), entity.Actor{UserID: "adm", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 0, d.TotalSales)
	assert.Nil(t, d.MostBought)
	assert.Empty(t, d.LatestSales)
	assert.True(t, d.DailyTotal.IsZero())
}
