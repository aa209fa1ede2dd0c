package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/pos"
)

// linesFromDTO las líneas llegan del cliente; total_price se ignora.
func linesFromDTO(in []dto.CartLineDTO) []entity.SaleItem {
	lines := make([]entity.SaleItem, len(in))
	for i, l := range in {
		lines[i] = entity.SaleItem{
			ProductName: strings.TrimSpace(l.ProductName),
			Barcode:     strings.TrimSpace(l.Barcode),
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		}
	}
	return lines
}

// buildCart reconstruye el carrito y valida lo que no depende del estado destino.
func buildCart(saleID string, items []dto.CartLineDTO, discount decimal.Decimal, paymentType, customer string, paid decimal.Decimal) (*pos.Cart, error) {
	cart := pos.NewCart()
	cart.SaleID = saleID
	cart.Lines = linesFromDTO(items)
	if err := cart.ValidateLines(); err != nil {
		return nil, err
	}
	if err := cart.SetDiscount(discount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(paymentType) == "" {
		paymentType = entity.PaymentCash
	}
	if err := cart.SetPayment(paymentType, paid, customer); err != nil {
		return nil, err
	}
	return cart, nil
}

func cartFromDTO(in dto.CartDTO) (*pos.Cart, error) {
	cart, err := buildCart(in.SaleID, in.Items, in.Discount, in.PaymentType, in.CustomerName, in.AmountPaid)
	if err != nil {
		return nil, err
	}
	if in.SaleDate != nil {
		cart.Date = *in.SaleDate
	}
	return cart, nil
}

func toCartResponse(c *pos.Cart) *dto.CartResponse {
	lines := make([]dto.CartLineDTO, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = dto.CartLineDTO{
			ProductName: l.ProductName,
			Barcode:     l.Barcode,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			TotalPrice:  l.TotalPrice(),
		}
	}
	t := c.Totals()
	issues := make([]dto.CartIssueDTO, 0)
	for _, ve := range c.CompletionIssues() {
		issues = append(issues, dto.CartIssueDTO{Rule: ve.Rule, Message: ve.Message})
	}
	var saleDate *time.Time
	if !c.Date.IsZero() {
		d := c.Date
		saleDate = &d
	}
	return &dto.CartResponse{
		Cart: dto.CartDTO{
			SaleID:       c.SaleID,
			SaleDate:     saleDate,
			Items:        lines,
			Discount:     c.Discount,
			PaymentType:  c.PaymentType,
			CustomerName: c.CustomerName,
			AmountPaid:   c.AmountPaid,
		},
		TotalAmount:  t.Total,
		NetAmount:    t.Net,
		ChangeAmount: t.Change,
		CanComplete:  len(issues) == 0,
		Issues:       issues,
	}
}

// ToSaleResponse venta persistida con total_price derivado por línea.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = dto.SaleItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Barcode:     it.Barcode,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			TotalPrice:  it.TotalPrice(),
		}
	}
	return &dto.SaleResponse{
		ID:           s.ID,
		SaleDate:     s.Date,
		CustomerName: s.CustomerName,
		TotalAmount:  s.TotalAmount,
		Discount:     s.Discount,
		NetAmount:    s.NetAmount,
		PaymentType:  s.PaymentType,
		AmountPaid:   s.AmountPaid,
		ChangeAmount: s.ChangeAmount,
		Status:       s.Status,
		Items:        items,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func requireStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return entity.SaleStatusDraft, nil
	}
	if !entity.ValidSaleStatus(status) {
		return "", domain.NewValidationError(domain.RuleInvalidStatus, "estado inválido (draft | completed)")
	}
	return status, nil
}
