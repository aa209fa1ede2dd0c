package sales

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ReceiptUseCase recibos imprimibles de ventas completadas.
type ReceiptUseCase struct {
	repo     repository.SaleRepository
	html     ReceiptRenderer
	pdf      ReceiptPDFGenerator
	shop     ShopInfo
	location *time.Location
}

// NewReceiptUseCase construye el caso de uso. pdf puede ser nil (sólo HTML).
func NewReceiptUseCase(repo repository.SaleRepository, html ReceiptRenderer, pdf ReceiptPDFGenerator, shop ShopInfo, loc *time.Location) *ReceiptUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptUseCase{repo: repo, html: html, pdf: pdf, shop: shop, location: loc}
}

// HTML devuelve el recibo listo para imprimir.
func (uc *ReceiptUseCase) HTML(ctx context.Context, saleID string) ([]byte, error) {
	data, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.html.RenderReceipt(&buf, data); err != nil {
		return nil, fmt.Errorf("render recibo: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF devuelve el recibo en PDF.
func (uc *ReceiptUseCase) PDF(ctx context.Context, saleID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	data, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReceiptPDF(ctx, data)
}

func (uc *ReceiptUseCase) load(ctx context.Context, saleID string) (ReceiptData, error) {
	sale, err := uc.repo.GetByID(ctx, saleID)
	if err != nil {
		return ReceiptData{}, err
	}
	if sale == nil {
		return ReceiptData{}, domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return ReceiptData{}, domain.NewValidationError(domain.RuleSaleNotCompleted, "sólo las ventas completadas tienen recibo")
	}
	return ReceiptData{
		Shop:     uc.shop,
		Sale:     sale,
		ShortID:  ShortID(sale.ID),
		Location: uc.location,
	}, nil
}

// ShortID primeros 8 caracteres del ID, impresos como número de recibo.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
