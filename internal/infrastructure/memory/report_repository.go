package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de solo lectura sobre las ventas confirmadas.
type ReportRepo struct {
	s *Store
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// DailyTotals agrupa por día calendario UTC, del más reciente al más antiguo.
func (r *ReportRepo) DailyTotals(_ context.Context, from, to time.Time) ([]repository.DailySalesResult, error) {
	byDay := make(map[time.Time]*repository.DailySalesResult)
	r.s.mu.RLock()
	for _, s := range r.s.sales {
		if !inRange(s.CreatedAt, from, to) {
			continue
		}
		t := s.CreatedAt.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		agg, ok := byDay[day]
		if !ok {
			agg = &repository.DailySalesResult{Day: day, Total: decimal.Zero}
			byDay[day] = agg
		}
		agg.Total = agg.Total.Add(s.Total)
		agg.Count++
	}
	r.s.mu.RUnlock()

	out := make([]repository.DailySalesResult, 0, len(byDay))
	for _, agg := range byDay {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out, nil
}

// SellerTotals agrupa por vendedor, ordenado por nombre.
func (r *ReportRepo) SellerTotals(_ context.Context, from, to time.Time) ([]repository.SellerSalesResult, error) {
	bySeller := make(map[string]*repository.SellerSalesResult)
	r.s.mu.RLock()
	for _, s := range r.s.sales {
		if !inRange(s.CreatedAt, from, to) {
			continue
		}
		agg, ok := bySeller[s.SellerID]
		if !ok {
			name := s.SellerID
			if u, found := r.s.users[s.SellerID]; found {
				name = u.Name
			}
			agg = &repository.SellerSalesResult{SellerID: s.SellerID, SellerName: name, Total: decimal.Zero}
			bySeller[s.SellerID] = agg
		}
		agg.Total = agg.Total.Add(s.Total)
		agg.Count++
	}
	r.s.mu.RUnlock()

	out := make([]repository.SellerSalesResult, 0, len(bySeller))
	for _, agg := range bySeller {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SellerName != out[j].SellerName {
			return out[i].SellerName < out[j].SellerName
		}
		return out[i].SellerID < out[j].SellerID
	})
	return out, nil
}

// SalesSummary total y cantidad de ventas en [from, to); sellerID vacío = todos.
func (r *ReportRepo) SalesSummary(_ context.Context, sellerID string, from, to time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.sales {
		if sellerID != "" && s.SellerID != sellerID {
			continue
		}
		if !inRange(s.CreatedAt, from, to) {
			continue
		}
		total = total.Add(s.Total)
		count++
	}
	return total, count, nil
}

// TopProduct producto con más unidades vendidas; empate -> menor ID.
func (r *ReportRepo) TopProduct(_ context.Context) (*repository.TopProductResult, error) {
	units := make(map[string]int64)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.sales {
		for _, it := range s.Items {
			units[it.ProductID] += it.Quantity
		}
	}
	var best *repository.TopProductResult
	for id, n := range units {
		if best == nil || n > best.UnitsSold || (n == best.UnitsSold && id < best.ProductID) {
			best = &repository.TopProductResult{ProductID: id, UnitsSold: n}
		}
	}
	if best == nil {
		return nil, nil
	}
	if p, ok := r.s.products[best.ProductID]; ok {
		best.ProductName = p.Name
	}
	return best, nil
}
