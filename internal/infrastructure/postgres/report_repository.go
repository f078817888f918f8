package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el libro de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DailyTotals agrupa por día calendario UTC en [from, to), del más reciente al más antiguo.
func (r *ReportRepo) DailyTotals(ctx context.Context, from, to time.Time) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', created_at AT TIME ZONE 'UTC') AS day,
	    COALESCE(SUM(total), 0)                          AS total,
	    COUNT(*)                                         AS sale_count
	FROM sales
	WHERE created_at >= $1 AND created_at < $2
	GROUP BY day
	ORDER BY day DESC`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.DailyTotals: %w", err)
	}
	defer rows.Close()

	results := []repository.DailySalesResult{}
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("report.DailyTotals scan: %w", err)
		}
		// timestamp sin zona: se interpreta como UTC.
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, rows.Err()
}

// SellerTotals agrupa por vendedor en [from, to), ordenado por nombre de vendedor.
func (r *ReportRepo) SellerTotals(ctx context.Context, from, to time.Time) ([]repository.SellerSalesResult, error) {
	const query = `
	SELECT
	    s.seller_id::text                    AS seller_id,
	    COALESCE(u.name, s.seller_id::text)  AS seller_name,
	    COALESCE(SUM(s.total), 0)            AS total,
	    COUNT(*)                             AS sale_count
	FROM sales s
	LEFT JOIN users u ON u.id = s.seller_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY s.seller_id, u.name
	ORDER BY seller_name, seller_id`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.SellerTotals: %w", err)
	}
	defer rows.Close()

	results := []repository.SellerSalesResult{}
	for rows.Next() {
		var row repository.SellerSalesResult
		if err := rows.Scan(&row.SellerID, &row.SellerName, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("report.SellerTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesSummary total y cantidad de ventas en [from, to); sellerID vacío = todos.
// COALESCE devuelve cero si no hay filas.
func (r *ReportRepo) SalesSummary(ctx context.Context, sellerID string, from, to time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), COUNT(*)
	FROM sales
	WHERE ($1 = '' OR seller_id::text = $1)
	  AND created_at >= $2 AND created_at < $3`

	var total decimal.Decimal
	var count int
	if err := r.q.QueryRow(ctx, query, sellerID, from, to).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("report.SalesSummary: %w", err)
	}
	return total, count, nil
}

// TopProduct producto con más unidades vendidas (nil si no hay ventas).
func (r *ReportRepo) TopProduct(ctx context.Context) (*repository.TopProductResult, error) {
	const query = `
	SELECT si.product_id::text, p.name, SUM(si.quantity)::bigint AS units
	FROM sale_items si
	JOIN products p ON p.id = si.product_id
	GROUP BY si.product_id, p.name
	ORDER BY units DESC, si.product_id
	LIMIT 1`

	var res repository.TopProductResult
	err := r.q.QueryRow(ctx, query).Scan(&res.ProductID, &res.ProductName, &res.UnitsSold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("report.TopProduct: %w", err)
	}
	return &res, nil
}
