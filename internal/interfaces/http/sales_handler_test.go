package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/dto"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain"
	apihttp "github.com/CardonaSantos/pos-ventas-api/internal/interfaces/http"
)

type stubCreator struct {
	got  *dto.CreateSaleRequest
	resp *dto.SaleResponse
	err  error
}

func (s *stubCreator) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	s.got = &in
	return s.resp, s.err
}

type stubReader struct {
	listGot *dto.SaleHistoryQuery
	list    *dto.SaleListResponse
	sale    *dto.SaleResponse
	pdf     []byte
	err     error
}

func (s *stubReader) ListByBranch(ctx context.Context, in dto.SaleHistoryQuery) (*dto.SaleListResponse, error) {
	s.listGot = &in
	return s.list, s.err
}

func (s *stubReader) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	return s.sale, s.err
}

func (s *stubReader) ReceiptPDF(ctx context.Context, id int64) ([]byte, error) {
	return s.pdf, s.err
}

func newApp(creator apihttp.SaleCreator, reader apihttp.SaleReader) *fiber.App {
	app := fiber.New()
	h := apihttp.NewSalesHandler(creator, reader)
	app.Post("/api/sales", h.Create)
	app.Get("/api/sales", h.List)
	app.Get("/api/sales/:id", h.GetByID)
	app.Get("/api/sales/:id/receipt", h.Receipt)
	return app
}

func validBody() map[string]any {
	return map[string]any{
		"branch_id":      1,
		"user_id":        1,
		"payment_method": "CASH",
		"lines": []map[string]any{
			{"product_id": 10, "quantity": 3, "selected_price_id": 100},
		},
	}
}

func postSale(t *testing.T, app *fiber.App, body any) *nethttp.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, "/api/sales", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *nethttp.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateSaleEndpoint(t *testing.T) {
	t.Run("venta válida responde 201 con la venta", func(t *testing.T) {
		creator := &stubCreator{resp: &dto.SaleResponse{
			ID:       42,
			BranchID: 1,
			UserID:   1,
			Total:    decimal.RequireFromString("76.5000"),
		}}
		app := newApp(creator, &stubReader{})

		resp := postSale(t, app, validBody())
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var sale dto.SaleResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))
		assert.EqualValues(t, 42, sale.ID)
		assert.Equal(t, "76.5", sale.Total.String())

		require.NotNil(t, creator.got)
		assert.EqualValues(t, 1, creator.got.BranchID)
		require.Len(t, creator.got.Lines, 1)
		assert.EqualValues(t, 100, creator.got.Lines[0].SelectedPriceID)
	})

	t.Run("cuerpo no-JSON responde 400", func(t *testing.T) {
		app := newApp(&stubCreator{}, &stubReader{})
		req := httptest.NewRequest(nethttp.MethodPost, "/api/sales", bytes.NewReader([]byte("no es json")))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
	})

	t.Run("sin líneas falla la validación", func(t *testing.T) {
		body := validBody()
		body["lines"] = []map[string]any{}
		app := newApp(&stubCreator{}, &stubReader{})

		resp := postSale(t, app, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
	})

	t.Run("método de pago desconocido falla la validación", func(t *testing.T) {
		body := validBody()
		body["payment_method"] = "BITCOIN"
		app := newApp(&stubCreator{}, &stubReader{})

		resp := postSale(t, app, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("errores de dominio se mapean a códigos estables", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{domain.ErrInvalidPrice, fiber.StatusBadRequest, "INVALID_PRICE"},
			{domain.ErrMismatchedEntity, fiber.StatusBadRequest, "MISMATCHED_ENTITY"},
			{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
			{domain.ErrPriceClaimConflict, fiber.StatusConflict, "PRICE_CLAIM_CONFLICT"},
			{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
			{domain.ErrRegisterRequired, fiber.StatusConflict, "REGISTER_REQUIRED"},
			{domain.ErrUnexpected, fiber.StatusInternalServerError, "INTERNAL"},
		}
		for _, c := range cases {
			app := newApp(&stubCreator{err: c.err}, &stubReader{})
			resp := postSale(t, app, validBody())
			assert.Equal(t, c.status, resp.StatusCode, "error %v", c.err)
			assert.Equal(t, c.code, decodeError(t, resp).Code, "error %v", c.err)
		}
	})
}

func TestListSalesEndpoint(t *testing.T) {
	t.Run("parsea filtros del query", func(t *testing.T) {
		reader := &stubReader{list: &dto.SaleListResponse{
			Data: []dto.SaleResponse{},
			Meta: dto.PageResponse{Total: 0, Limit: 20, Offset: 0},
		}}
		app := newApp(&stubCreator{}, reader)

		req := httptest.NewRequest(nethttp.MethodGet,
			"/api/sales?branch_id=3&limit=20&text=panadol&payment_methods=CASH&payment_methods=CARD&date_from=2026-03-01", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		require.NotNil(t, reader.listGot)
		assert.EqualValues(t, 3, reader.listGot.BranchID)
		assert.Equal(t, "panadol", reader.listGot.Text)
		assert.Equal(t, []string{"CASH", "CARD"}, reader.listGot.PaymentMethods)
		assert.Equal(t, "2026-03-01", reader.listGot.DateFrom)
	})

	t.Run("sin branch_id responde 400", func(t *testing.T) {
		app := newApp(&stubCreator{}, &stubReader{})
		req := httptest.NewRequest(nethttp.MethodGet, "/api/sales?limit=20", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetSaleEndpoint(t *testing.T) {
	t.Run("venta existente responde 200", func(t *testing.T) {
		reader := &stubReader{sale: &dto.SaleResponse{ID: 42}}
		app := newApp(&stubCreator{}, reader)

		req := httptest.NewRequest(nethttp.MethodGet, "/api/sales/42", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("id no numérico responde 400", func(t *testing.T) {
		app := newApp(&stubCreator{}, &stubReader{})
		req := httptest.NewRequest(nethttp.MethodGet, "/api/sales/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("venta inexistente responde 404", func(t *testing.T) {
		app := newApp(&stubCreator{}, &stubReader{err: domain.ErrNotFound})
		req := httptest.NewRequest(nethttp.MethodGet, "/api/sales/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
	})
}

func TestReceiptEndpoint(t *testing.T) {
	reader := &stubReader{pdf: []byte("%PDF-1.7 contenido")}
	app := newApp(&stubCreator{}, reader)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/sales/42/receipt", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "venta-42.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
