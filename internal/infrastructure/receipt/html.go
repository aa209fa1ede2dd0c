// Package receipt renderiza el recibo imprimible en HTML. La página se imprime sola
// al abrirse.
package receipt

import (
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/money"
)

const receiptHTML = `<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>Recibo #{{.ShortID}}</title>
<style>
  body { font-family: "Sarabun", "Tahoma", sans-serif; width: 80mm; margin: 0 auto; font-size: 12px; }
  h1 { font-size: 16px; text-align: center; margin: 4px 0; }
  .center { text-align: center; }
  .muted { color: #555; }
  table { width: 100%; border-collapse: collapse; }
  td, th { padding: 2px 0; }
  th { border-bottom: 1px dashed #000; text-align: left; }
  .num { text-align: right; }
  .totals td { border-top: 1px dashed #000; }
  .net { font-weight: bold; font-size: 14px; }
  @media print { .no-print { display: none; } }
</style>
</head>
<body onload="window.print()">
<h1>{{.Shop.Name}}</h1>
{{- if .Shop.Phone}}
<div class="center muted">Tel: {{.Shop.Phone}}</div>
{{- end}}
<div class="center">Recibo #{{.ShortID}}</div>
<div class="center muted">{{.Date}}</div>
{{- if .Sale.CustomerName}}
<div>Cliente: {{.Sale.CustomerName}}</div>
{{- end}}
<table>
<thead><tr><th>Producto</th><th class="num">Cant.</th><th class="num">Total</th></tr></thead>
<tbody>
{{- range .Sale.Items}}
<tr><td>{{.ProductName}}<br><span class="muted">{{money .UnitPrice}}</span></td><td class="num">{{.Quantity}}</td><td class="num">{{money .TotalPrice}}</td></tr>
{{- end}}
</tbody>
</table>
<table class="totals">
<tr><td>Total</td><td class="num">{{money .Sale.TotalAmount}}</td></tr>
{{- if .Sale.Discount.IsPositive}}
<tr><td>Descuento</td><td class="num">-{{money .Sale.Discount}}</td></tr>
{{- end}}
<tr class="net"><td>Neto</td><td class="num">{{money .Sale.NetAmount}}</td></tr>
{{- if .Credit}}
<tr><td>Pago</td><td class="num">Crédito</td></tr>
{{- else}}
<tr><td>Recibido</td><td class="num">{{money .Sale.AmountPaid}}</td></tr>
<tr><td>Vuelto</td><td class="num">{{money .Sale.ChangeAmount}}</td></tr>
{{- end}}
</table>
<p class="center">Gracias por su compra</p>
<button class="no-print" onclick="window.print()">Imprimir</button>
</body>
</html>
`

// HTMLRenderer implementa sales.ReceiptRenderer con html/template.
type HTMLRenderer struct {
	tmpl *template.Template
}

var _ sales.ReceiptRenderer = (*HTMLRenderer)(nil)

// view datos planos para la plantilla.
type view struct {
	sales.ReceiptData
	Date   string
	Credit bool
}

// NewHTMLRenderer compila la plantilla.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{"money": money.Format}
	return &HTMLRenderer{tmpl: template.Must(template.New("receipt").Funcs(funcs).Parse(receiptHTML))}
}

// RenderReceipt escribe el recibo en w con el símbolo de moneda de la tienda.
func (r *HTMLRenderer) RenderReceipt(w io.Writer, data sales.ReceiptData) error {
	sym := data.Shop.CurrencySymbol
	t, err := r.tmpl.Clone()
	if err != nil {
		return err
	}
	t.Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return money.WithSymbol(sym, d) },
	})
	loc := data.Location
	if loc == nil {
		loc = data.Sale.Date.Location()
	}
	return t.Execute(w, view{
		ReceiptData: data,
		Date:        data.Sale.Date.In(loc).Format("02/01/2006 15:04"),
		Credit:      data.Sale.PaymentType == entity.PaymentCredit,
	})
}
