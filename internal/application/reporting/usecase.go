// Package reporting agrega el libro de ventas: reportes por día y por vendedor, y el dashboard.
package reporting

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

const (
	dateLayout         = "2006-01-02"
	defaultRangeDays   = 30
	dashboardLatestLen = 5
)

// UseCase reportes de solo lectura. Fuente de datos: ReportRepository y SaleRepository.
type UseCase struct {
	reportRepo  repository.ReportRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportRepo repository.ReportRepository, saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository) *UseCase {
	return &UseCase{reportRepo: reportRepo, saleRepo: saleRepo, productRepo: productRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Daily total y cantidad de ventas por día calendario (UTC), del más reciente al más antiguo.
func (uc *UseCase) Daily(ctx context.Context, in dto.ReportRangeRequest) (*dto.DailyReportDTO, error) {
	from, to, period, err := uc.parseRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.DailyReportDTO{Period: period, Days: make([]dto.DailySalesDTO, 0, len(rows))}
	for _, r := range rows {
		out.Days = append(out.Days, dto.DailySalesDTO{
			Day:   r.Day.UTC().Format(dateLayout),
			Total: r.Total,
			Count: r.Count,
		})
	}
	return out, nil
}

// BySeller total y cantidad de ventas por vendedor, ordenado por nombre.
func (uc *UseCase) BySeller(ctx context.Context, in dto.ReportRangeRequest) (*dto.SellerReportDTO, error) {
	from, to, period, err := uc.parseRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.SellerTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.SellerReportDTO{Period: period, Sellers: make([]dto.SellerSalesDTO, 0, len(rows))}
	for _, r := range rows {
		out.Sellers = append(out.Sellers, dto.SellerSalesDTO{
			SellerID:   r.SellerID,
			SellerName: r.SellerName,
			Total:      r.Total,
			Count:      r.Count,
		})
	}
	return out, nil
}

// Dashboard resumen para la pantalla inicial. Las consultas corren en paralelo:
//  1. cantidad de productos
//  2. cantidad total de ventas
//  3. ventas propias (solo vendedores)
//  4. total vendido hoy (UTC)
//  5. últimas 5 ventas
//  6. producto más vendido por unidades
func (uc *UseCase) Dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := todayStart.AddDate(0, 0, 1)

	out := &dto.DashboardSummaryDTO{}
	var (
		latest []*entity.Sale
		top    *repository.TopProductResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.productRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("contar productos: %w", err)
		}
		out.ProductCount = n
		return nil
	})
	g.Go(func() error {
		_, n, err := uc.reportRepo.SalesSummary(gctx, "", time.Time{}, tomorrow)
		if err != nil {
			return fmt.Errorf("contar ventas: %w", err)
		}
		out.TotalSales = n
		return nil
	})
	if !actor.IsAdmin() {
		g.Go(func() error {
			_, n, err := uc.reportRepo.SalesSummary(gctx, actor.UserID, time.Time{}, tomorrow)
			if err != nil {
				return fmt.Errorf("contar ventas del vendedor: %w", err)
			}
			out.SellerSales = &n
			return nil
		})
	}
	g.Go(func() error {
		total, _, err := uc.reportRepo.SalesSummary(gctx, "", todayStart, tomorrow)
		if err != nil {
			return fmt.Errorf("total del día: %w", err)
		}
		out.DailyTotal = total
		return nil
	})
	g.Go(func() error {
		var err error
		latest, err = uc.saleRepo.List(gctx, "", dashboardLatestLen, 0)
		if err != nil {
			return fmt.Errorf("últimas ventas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		top, err = uc.reportRepo.TopProduct(gctx)
		if err != nil {
			return fmt.Errorf("producto más vendido: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.LatestSales = make([]dto.SaleResponse, 0, len(latest))
	for _, s := range latest {
		out.LatestSales = append(out.LatestSales, dto.NewSaleResponse(s, nil))
	}
	if top != nil {
		out.MostBought = &dto.TopProductDTO{
			ProductID:   top.ProductID,
			ProductName: top.ProductName,
			UnitsSold:   top.UnitsSold,
		}
	}
	return out, nil
}

// parseRange convierte el rango de fechas (inclusive) a [from, to) en UTC.
func (uc *UseCase) parseRange(in dto.ReportRangeRequest) (from, to time.Time, period dto.PeriodDTO, err error) {
	now := uc.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	end := today
	if in.EndDate != "" {
		if end, err = time.Parse(dateLayout, in.EndDate); err != nil {
			return from, to, period, fmt.Errorf("%w: end_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	start := end.AddDate(0, 0, -defaultRangeDays)
	if in.StartDate != "" {
		if start, err = time.Parse(dateLayout, in.StartDate); err != nil {
			return from, to, period, fmt.Errorf("%w: start_date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if start.After(end) {
		return from, to, period, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	period = dto.PeriodDTO{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout)}
	return start, end.AddDate(0, 0, 1), period, nil
}
