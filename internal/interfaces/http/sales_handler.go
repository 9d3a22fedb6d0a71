package http

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/dto"
)

// SaleCreator y SaleReader son las vistas del handler sobre los casos de
// uso; interfaces chicas para poder testear el handler con dobles.
type SaleCreator interface {
	CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error)
}

type SaleReader interface {
	ListByBranch(ctx context.Context, in dto.SaleHistoryQuery) (*dto.SaleListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error)
	ReceiptPDF(ctx context.Context, id int64) ([]byte, error)
}

// SalesHandler maneja las peticiones HTTP del motor de ventas.
type SalesHandler struct {
	creator  SaleCreator
	reader   SaleReader
	validate *validator.Validate
}

// NewSalesHandler construye el handler.
func NewSalesHandler(creator SaleCreator, reader SaleReader) *SalesHandler {
	return &SalesHandler{
		creator:  creator,
		reader:   reader,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create crea una venta completa.
// POST /api/sales
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	sale, err := h.creator.CreateSale(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List pagina el historial de ventas de una sucursal.
// GET /api/sales?branch_id=1&limit=20&offset=0&...
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var in dto.SaleHistoryQuery
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	page, err := h.reader.ListByBranch(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// GetByID devuelve una venta con sus líneas.
// GET /api/sales/:id
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	sale, err := h.reader.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// Receipt devuelve el comprobante PDF de una venta.
// GET /api/sales/:id/receipt
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	pdf, err := h.reader.ReceiptPDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
