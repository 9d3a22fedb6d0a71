package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/dto"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
)

// writeError mapea el error de dominio a código HTTP y cuerpo estable:
// validación → 400, conflicto de estado → 409, no encontrado → 404,
// lo demás → 500 sin detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRICE", Message: "precio inexistente, no aprobado o ya consumido"})
	case errors.Is(err, domain.ErrMismatchedEntity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISMATCHED_ENTITY", Message: "el precio seleccionado no corresponde a la entidad de la línea"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida: debe ser un entero positivo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrPriceClaimConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRICE_CLAIM_CONFLICT", Message: "un precio temporal fue consumido por otra venta"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para completar la venta"})
	case errors.Is(err, domain.ErrRegisterRequired):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REGISTER_REQUIRED", Message: "se requiere una caja abierta para ventas en efectivo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
