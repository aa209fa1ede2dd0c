// Package sales contiene el flujo del punto de venta: carrito sin estado en el servidor,
// guardado de borradores, finalización y recibos.
package sales

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un repositorio de ventas atado a una transacción:
// cabecera y líneas se confirman o se descartan juntas.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(sales repository.SaleRepository) error) error
}

// ShopInfo datos de la tienda impresos en el recibo.
type ShopInfo struct {
	Name           string
	Phone          string
	CurrencySymbol string
}

// ReceiptData todo lo que necesita un recibo. Se arma desde la venta persistida.
type ReceiptData struct {
	Shop     ShopInfo
	Sale     *entity.Sale
	ShortID  string
	Location *time.Location
}

// ReceiptRenderer escribe el recibo imprimible en HTML.
type ReceiptRenderer interface {
	RenderReceipt(w io.Writer, data ReceiptData) error
}

// ReceiptPDFGenerator genera el recibo en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
