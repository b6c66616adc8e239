package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError identifica la celda de stock que no alcanzó para un descuento.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando en handlers y usecases.
type InsufficientStockError struct {
	FormatID    string
	WarehouseID string
}

// NewInsufficientStockError construye el error con formato y bodega.
func NewInsufficientStockError(formatID, warehouseID string) *InsufficientStockError {
	return &InsufficientStockError{FormatID: formatID, WarehouseID: warehouseID}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el formato %s en la bodega %s", e.FormatID, e.WarehouseID)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
