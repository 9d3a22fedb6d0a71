// Package pdf implementa el comprobante imprimible de una venta
// (recibo térmico tamaño carta reducido).
//
// Layout:
//
//	┌───────────────────────────────────────────────┐
//	│  NOMBRE DE LA TIENDA      │  Venta # + Fecha  │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | P.Unit | Subtotal   │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL                                        │
//	│  Método de pago / referencia / notas          │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/CardonaSantos/pos-ventas-api/internal/application/sales"
	"github.com/CardonaSantos/pos-ventas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator genera el comprobante de venta usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador con el nombre comercial a
// imprimir en el encabezado.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) Render(sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comprobante de venta #%d", sale.ID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(sale.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))
	for _, r := range footerRows(sale) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tienda (izq) y número de venta + fecha (der).
func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%s #%d", sale.VoucherType, sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Artículo", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de venta.
func tableLineRows(lines []entity.SaleLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		subtotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				lineLabel(l),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"Q"+l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"Q"+subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// lineLabel: nombre del artículo; si la lectura no trae el nombre de
// catálogo, cae al identificador.
func lineLabel(l entity.SaleLine) string {
	if l.ItemName != "" {
		return l.ItemName
	}
	if l.PresentationID != nil {
		return fmt.Sprintf("Presentación #%d (producto #%d)", *l.PresentationID, l.ProductID)
	}
	return fmt.Sprintf("Producto #%d", l.ProductID)
}

// totalRow: total a pagar alineado a la derecha.
func totalRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("Q"+sale.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: método de pago, referencia y notas si existen.
func footerRows(sale *entity.Sale) []core.Row {
	var rows []core.Row
	if sale.PaymentMethod != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Método de pago: "+sale.PaymentMethod, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	if sale.PaymentReference != nil {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Referencia: "+*sale.PaymentReference, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	if sale.Notes != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Notas: "+sale.Notes, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra. Conserve este comprobante para cambios o garantías.", props.Text{
			Size: 6.5, Color: colorGray, Top: 3, Align: align.Center,
		}),
	)))
	return rows
}
