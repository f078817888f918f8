package checkout

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad atómica (transacción), pasando repositorios atados a ella.
// Si fn devuelve error, o el commit falla, no queda ningún cambio aplicado.
// Los bloqueos tomados con ProductRepository.LockForCheckout se liberan al salir, en todos los caminos.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// EventPublisher publica la venta confirmada hacia otros sistemas. Se invoca fuera de la unidad atómica.
type EventPublisher interface {
	PublishSaleCommitted(ctx context.Context, sale *entity.Sale) error
}

// Recorder registra métricas del checkout.
type Recorder interface {
	ObserveCheckout(outcome string, elapsed time.Duration)
}

// IdempotencyStore reserva claves Idempotency-Key por vendedor.
type IdempotencyStore interface {
	// Reserve intenta reservar la clave. Si ya existía devuelve reserved=false y el ID de venta
	// asociado (vacío si la petición original aún está en curso).
	Reserve(ctx context.Context, sellerID, key string) (saleID string, reserved bool, err error)
	// Complete asocia la clave a la venta confirmada.
	Complete(ctx context.Context, sellerID, key, saleID string) error
	// Release libera la clave cuando el checkout fue rechazado o falló.
	Release(ctx context.Context, sellerID, key string) error
}

// Resultados del checkout usados como etiqueta de métricas.
const (
	OutcomeCommitted          = "committed"
	OutcomeEmptyBasket        = "empty_basket"
	OutcomeInvalidQuantity    = "invalid_quantity"
	OutcomeProductUnavailable = "product_unavailable"
	OutcomeInsufficientStock  = "insufficient_stock"
	OutcomeCommitFailure      = "commit_failure"
	OutcomeUnauthorized       = "unauthorized"
)

type noopPublisher struct{}

func (noopPublisher) PublishSaleCommitted(context.Context, *entity.Sale) error { return nil }

type noopRecorder struct{}

func (noopRecorder) ObserveCheckout(string, time.Duration) {}
