// Package pdf genera el recibo de venta en PDF.
//
// Layout de la página A5:
//
//	┌─────────────────────────────────────────┐
//	│  HEADER: Tienda + teléfono              │
//	│  Recibo N° + fecha + cliente            │
//	│  ─────────────────────────────────────  │
//	│  TABLA: Producto | Cant | P.Unit | Total│
//	│  ─────────────────────────────────────  │
//	│  TOTALES: Total / Descuento / Neto      │
//	│  PAGO: forma de pago / recibido / vuelto│
//	└─────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

var _ sales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, data sales.ReceiptData) ([]byte, error) {
	if data.Sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+data.ShortID, true).
		WithAuthor(data.Shop.Name, true).
		Build()

	m := maroto.New(cfg)
	sym := data.Shop.CurrencySymbol

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(sym, data.Sale.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sym, data.Sale)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra", props.Text{
			Style: fontstyle.Italic, Size: 9, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda (izq) y N° de recibo + fecha (der).
func headerRow(data sales.ReceiptData) core.Row {
	fecha := data.Sale.Date.In(data.Location).Format("02/01/2006 15:04")
	customer := nonEmpty(data.Sale.CustomerName, "-")

	return row.New(22).Add(
		col.New(7).Add(
			text.New(data.Shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tel: "+nonEmpty(data.Shop.Phone, "-"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("Cliente: "+customer, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("#"+data.ShortID, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 6, align.Left),
		h("Cant.", 1, align.Center),
		h("P.Unit", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// itemRows: una fila por línea de la venta.
func itemRows(sym string, items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.WithSymbol(sym, it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(money.WithSymbol(sym, it.TotalPrice()), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// totalsRows: totales y pago alineados a la derecha.
func totalsRows(sym string, s *entity.Sale) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style, size = fontstyle.Bold, 10
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
		)
	}

	rows := []core.Row{pair("Total:", money.WithSymbol(sym, s.TotalAmount), false)}
	if s.Discount.IsPositive() {
		rows = append(rows, pair("Descuento:", money.WithSymbol(sym, s.Discount.Neg()), false))
	}
	rows = append(rows, pair("Neto:", money.WithSymbol(sym, s.NetAmount), true))

	if s.PaymentType == entity.PaymentCredit {
		rows = append(rows, pair("Pago:", "Crédito", false))
		return rows
	}
	rows = append(rows,
		pair("Recibido:", money.WithSymbol(sym, s.AmountPaid), false),
		pair("Vuelto:", money.WithSymbol(sym, s.ChangeAmount), false),
	)
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
