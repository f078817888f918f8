// Package checkout contiene las reglas puras del checkout: normalización de la canasta,
// orden de bloqueo y cálculo de totales. No conoce persistencia ni concurrencia.
package checkout

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// Line línea de la canasta tal como la envía el vendedor.
type Line struct {
	ProductID string
	Quantity  int64
}

// Demand demanda total de un producto después de combinar líneas repetidas.
type Demand struct {
	ProductID string
	Quantity  int64
}

// Normalize valida la canasta y suma las cantidades por producto.
// Conserva el orden de la primera aparición de cada producto.
// Canasta vacía -> ErrEmptyBasket; cantidad <= 0 -> InvalidQuantityError.
func Normalize(lines []Line) ([]Demand, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyBasket
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, &domain.InvalidQuantityError{ProductID: l.ProductID, Quantity: l.Quantity}
		}
	}

	index := make(map[string]int, len(lines))
	demands := make([]Demand, 0, len(lines))
	for _, l := range lines {
		i, ok := index[l.ProductID]
		if !ok {
			index[l.ProductID] = len(demands)
			demands = append(demands, Demand{ProductID: l.ProductID, Quantity: l.Quantity})
			continue
		}
		if demands[i].Quantity > math.MaxInt64-l.Quantity {
			return nil, &domain.InvalidQuantityError{ProductID: l.ProductID, Quantity: l.Quantity}
		}
		demands[i].Quantity += l.Quantity
	}
	return demands, nil
}

// LockOrder devuelve los IDs de producto únicos en orden ascendente.
// Todo bloqueo de stock se adquiere en este orden para evitar deadlocks.
func LockOrder(demands []Demand) []string {
	ids := make([]string, 0, len(demands))
	seen := make(map[string]struct{}, len(demands))
	for _, d := range demands {
		if _, ok := seen[d.ProductID]; ok {
			continue
		}
		seen[d.ProductID] = struct{}{}
		ids = append(ids, d.ProductID)
	}
	sort.Strings(ids)
	return ids
}

// Total suma Quantity * UnitPrice de todas las líneas.
func Total(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
