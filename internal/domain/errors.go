package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrDuplicate    = errors.New("el registro ya existe")

	// Rechazos de negocio del checkout: nunca dejan efectos secundarios.
	ErrEmptyBasket        = errors.New("la canasta no tiene productos")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrProductUnavailable = errors.New("producto no disponible")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrCommitFailure falla de infraestructura durante la escritura atómica (stock + ventas).
	ErrCommitFailure = errors.New("no se pudo confirmar la venta")

	// ErrCheckoutInProgress otra petición con la misma Idempotency-Key aún no termina.
	ErrCheckoutInProgress = errors.New("checkout en curso con la misma clave de idempotencia")
)

// InvalidQuantityError línea de la canasta con cantidad <= 0.
type InvalidQuantityError struct {
	ProductID string
	Quantity  int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s: producto %s, cantidad %d", ErrInvalidQuantity, e.ProductID, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

// ProductUnavailableError el producto no existe o está inactivo.
type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductUnavailable, e.ProductID)
}

func (e *ProductUnavailableError) Unwrap() error { return ErrProductUnavailable }

// InsufficientStockError la demanda total del producto supera su stock actual.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %s, solicitado %d, disponible %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// CommitFailureError envuelve la causa de infraestructura. errors.Is(err, ErrCommitFailure)
// es verdadero y la causa original sigue accesible con errors.As / errors.Is.
type CommitFailureError struct {
	Err error
}

func (e *CommitFailureError) Error() string {
	if e.Err == nil {
		return ErrCommitFailure.Error()
	}
	return fmt.Sprintf("%s: %v", ErrCommitFailure, e.Err)
}

func (e *CommitFailureError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommitFailure}
	}
	return []error{ErrCommitFailure, e.Err}
}

// IsCheckoutRejection indica si el error es un rechazo de negocio (corregible por el usuario)
// y no una falla de infraestructura.
func IsCheckoutRejection(err error) bool {
	return errors.Is(err, ErrEmptyBasket) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrInsufficientStock)
}
