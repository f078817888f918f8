package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/jhoicas/inventario-pos/internal/domain"
	domcheckout "github.com/jhoicas/inventario-pos/internal/domain/checkout"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// UseCase motor de checkout: valida la canasta contra el stock actual y confirma
// la venta completa (descuentos de stock + venta + líneas) o no confirma nada.
type UseCase struct {
	txRunner  TxRunner
	saleRepo  repository.SaleRepository
	publisher EventPublisher
	recorder  Recorder
	idem      IdempotencyStore
	log       zerolog.Logger
	timeout   time.Duration
	now       func() time.Time
	newID     func() string
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*UseCase)

// WithPublisher publica sale.committed después de cada commit.
func WithPublisher(p EventPublisher) Option { return func(uc *UseCase) { uc.publisher = p } }

// WithRecorder registra métricas por resultado.
func WithRecorder(r Recorder) Option { return func(uc *UseCase) { uc.recorder = r } }

// WithIdempotency habilita CheckoutIdempotent.
func WithIdempotency(s IdempotencyStore) Option { return func(uc *UseCase) { uc.idem = s } }

// WithLogger logger estructurado; por defecto zerolog.Nop().
func WithLogger(l zerolog.Logger) Option { return func(uc *UseCase) { uc.log = l } }

// WithTimeout límite para la unidad atómica completa (espera de bloqueos incluida). 0 = sin límite.
func WithTimeout(d time.Duration) Option { return func(uc *UseCase) { uc.timeout = d } }

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option { return func(uc *UseCase) { uc.now = now } }

// NewUseCase construye el motor de checkout.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, opts ...Option) *UseCase {
	uc := &UseCase{
		txRunner:  txRunner,
		saleRepo:  saleRepo,
		publisher: noopPublisher{},
		recorder:  noopRecorder{},
		log:       zerolog.Nop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Checkout confirma la canasta del vendedor como una venta.
//
// Pasos:
//  1. Canasta vacía o cantidades <= 0 -> rechazo sin tocar estado.
//  2. Normaliza: suma cantidades por producto.
//  3. Bloquea los productos (orden ascendente de ID) y verifica que existan y estén activos.
//  4. Verifica demanda <= stock para todos; un solo faltante rechaza la canasta completa.
//  5. Descuenta stock, crea líneas con el precio vigente, calcula total y guarda la venta.
//
// Rechazos: ErrEmptyBasket, InvalidQuantityError, ProductUnavailableError, InsufficientStockError.
// Falla de persistencia: CommitFailureError (rollback completo).
func (uc *UseCase) Checkout(ctx context.Context, sellerID string, lines []domcheckout.Line) (*entity.Sale, error) {
	start := time.Now()
	sale, err := uc.checkout(ctx, sellerID, lines)
	uc.recorder.ObserveCheckout(outcomeOf(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	// Fuera de la unidad atómica: los bloqueos ya se liberaron.
	if err := uc.publisher.PublishSaleCommitted(ctx, sale); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("publicar sale.committed")
	}
	return sale, nil
}

func (uc *UseCase) checkout(ctx context.Context, sellerID string, lines []domcheckout.Line) (*entity.Sale, error) {
	if sellerID == "" {
		return nil, domain.ErrUnauthorized
	}
	demands, err := domcheckout.Normalize(lines)
	if err != nil {
		uc.log.Debug().Err(err).Str("seller_id", sellerID).Msg("canasta rechazada")
		return nil, err
	}
	lockIDs := domcheckout.LockOrder(demands)

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	var committed *entity.Sale
	err = uc.txRunner.RunCheckout(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		products, err := productRepo.LockForCheckout(ctx, lockIDs)
		if err != nil {
			return fmt.Errorf("bloquear productos: %w", err)
		}

		for _, d := range demands {
			if !products[d.ProductID].Sellable() {
				return &domain.ProductUnavailableError{ProductID: d.ProductID}
			}
		}
		for _, d := range demands {
			p := products[d.ProductID]
			if p.Stock < d.Quantity {
				return &domain.InsufficientStockError{
					ProductID: d.ProductID,
					Requested: d.Quantity,
					Available: p.Stock,
				}
			}
		}

		sale := &entity.Sale{
			ID:        uc.newID(),
			SellerID:  sellerID,
			CreatedAt: uc.now().UTC(),
			Items:     make([]entity.SaleItem, 0, len(demands)),
		}
		for _, d := range demands {
			if err := productRepo.DecrementStock(ctx, d.ProductID, d.Quantity); err != nil {
				return err
			}
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:        uc.newID(),
				SaleID:    sale.ID,
				ProductID: d.ProductID,
				Quantity:  d.Quantity,
				UnitPrice: products[d.ProductID].Price,
			})
		}
		sale.Total = domcheckout.Total(sale.Items)

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for i := range sale.Items {
			if err := saleRepo.CreateItem(ctx, &sale.Items[i]); err != nil {
				return err
			}
		}
		committed = sale
		return nil
	})
	if err != nil {
		if domain.IsCheckoutRejection(err) {
			uc.log.Info().Err(err).Str("seller_id", sellerID).Msg("checkout rechazado")
			return nil, err
		}
		uc.log.Error().Err(err).
			Str("seller_id", sellerID).
			Int("lines", len(demands)).
			Msg("checkout: falla al confirmar, rollback aplicado")
		return nil, &domain.CommitFailureError{Err: err}
	}

	uc.log.Info().
		Str("sale_id", committed.ID).
		Str("seller_id", sellerID).
		Str("total", committed.Total.String()).
		Int("lines", len(committed.Items)).
		Msg("venta confirmada")
	return committed, nil
}

// CheckoutIdempotent igual que Checkout, pero una repetición con la misma key devuelve la venta
// ya confirmada (replayed=true) en vez de vender dos veces. Sin store o sin key delega en Checkout.
func (uc *UseCase) CheckoutIdempotent(ctx context.Context, sellerID, key string, lines []domcheckout.Line) (sale *entity.Sale, replayed bool, err error) {
	if uc.idem == nil || key == "" {
		sale, err = uc.Checkout(ctx, sellerID, lines)
		return sale, false, err
	}
	if sellerID == "" {
		return nil, false, domain.ErrUnauthorized
	}

	saleID, reserved, err := uc.idem.Reserve(ctx, sellerID, key)
	if err != nil {
		return nil, false, fmt.Errorf("reservar idempotency key: %w", err)
	}
	if !reserved {
		if saleID == "" {
			return nil, false, domain.ErrCheckoutInProgress
		}
		prev, err := uc.saleRepo.GetByID(ctx, saleID)
		if err != nil {
			return nil, false, err
		}
		if prev == nil || prev.SellerID != sellerID {
			return nil, false, domain.ErrConflict
		}
		return prev, true, nil
	}

	sale, err = uc.Checkout(ctx, sellerID, lines)
	if err != nil {
		if relErr := uc.idem.Release(context.WithoutCancel(ctx), sellerID, key); relErr != nil {
			uc.log.Warn().Err(relErr).Str("seller_id", sellerID).Msg("liberar idempotency key")
		}
		return nil, false, err
	}
	if err := uc.idem.Complete(context.WithoutCancel(ctx), sellerID, key, sale.ID); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("completar idempotency key")
	}
	return sale, false, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, domain.ErrEmptyBasket):
		return OutcomeEmptyBasket
	case errors.Is(err, domain.ErrInvalidQuantity):
		return OutcomeInvalidQuantity
	case errors.Is(err, domain.ErrProductUnavailable):
		return OutcomeProductUnavailable
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errors.Is(err, domain.ErrUnauthorized):
		return OutcomeUnauthorized
	default:
		return OutcomeCommitFailure
	}
}
