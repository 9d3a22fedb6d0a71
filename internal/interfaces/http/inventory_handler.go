package http

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/dto"
	"github.com/CardonaSantos/pos-ventas-api/internal/application/inventory"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
)

// InventoryHandler maneja entregas de stock y correcciones de lotes.
type InventoryHandler struct {
	deliveries *inventory.RegisterDeliveryUseCase
	validate   *validator.Validate
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(deliveries *inventory.RegisterDeliveryUseCase) *InventoryHandler {
	return &InventoryHandler{
		deliveries: deliveries,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterDelivery registra una entrega de stock con sus lotes.
// POST /api/deliveries
func (h *InventoryHandler) RegisterDelivery(c *fiber.Ctx) error {
	var in dto.RegisterDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	input := inventory.DeliveryInput{
		BranchID:     in.BranchID,
		SupplierID:   in.SupplierID,
		ReceivedByID: in.ReceivedByID,
	}
	for _, e := range in.Entries {
		item := entity.ProductRef(e.ProductID)
		if e.PresentationID > 0 {
			item = entity.PresentationRef(e.PresentationID, e.OwnerProductID)
		}
		entry := inventory.DeliveryEntry{
			Item:      item,
			Quantity:  e.Quantity,
			UnitCost:  e.UnitCost,
			ExpiresAt: e.ExpiresAt,
		}
		if e.ReceivedAt != nil {
			entry.ReceivedAt = *e.ReceivedAt
		}
		input.Entries = append(input.Entries, entry)
	}

	delivery, err := h.deliveries.RegisterDelivery(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DeliveryResponse{
		ID:         delivery.ID,
		BranchID:   delivery.BranchID,
		SupplierID: delivery.SupplierID,
		TotalCost:  delivery.TotalCost,
		CreatedAt:  delivery.CreatedAt,
	})
}

// RemoveLot elimina un lote por corrección explícita.
// DELETE /api/stock-lots/:id
func (h *InventoryHandler) RemoveLot(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.RemoveLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.deliveries.RemoveLot(c.Context(), id, in.BranchID, in.UserID, in.Reason); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
