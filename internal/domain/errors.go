package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Motor de ventas.
	ErrInvalidPrice       = errors.New("precio no válido")
	ErrMismatchedEntity   = errors.New("el precio no corresponde a la entidad indicada")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrPriceClaimConflict = errors.New("un precio temporal ya fue utilizado por otra venta")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrRegisterRequired   = errors.New("se requiere una caja abierta para registrar la venta")

	// ErrUnexpected envuelve fallas internas no reconocidas; el detalle queda en el log del servidor.
	ErrUnexpected = errors.New("error interno inesperado")
)

// Recognized indica si el error pertenece a la taxonomía de dominio
// (se devuelve al cliente preservando su tipo). Todo lo demás se
// envuelve en ErrUnexpected antes de salir del orquestador.
func Recognized(err error) bool {
	for _, e := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrConflict,
		ErrInvalidPrice, ErrMismatchedEntity, ErrInvalidQuantity,
		ErrPriceClaimConflict, ErrInsufficientStock, ErrRegisterRequired,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
