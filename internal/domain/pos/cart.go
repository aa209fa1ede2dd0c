// Package pos contiene el carrito del punto de venta: acumulación de líneas contra el
// catálogo, totales, descuento, validación por forma de pago y la transición
// borrador → completada.
//
// El carrito es un objeto de estado explícito: la UI lo envía en cada operación y
// recibe el estado nuevo; el servidor lo reconstruye desde las líneas antes de guardar
// y nunca confía en los totales que manda el cliente.
package pos

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Cart estado del carrito. Lines conserva el orden de inserción.
type Cart struct {
	SaleID       string // vacío mientras no se haya guardado
	Date         time.Time
	Lines        []entity.SaleItem
	Discount     decimal.Decimal
	PaymentType  string
	CustomerName string
	AmountPaid   decimal.Decimal
}

// Totals montos derivados del carrito.
type Totals struct {
	Total    decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
	Change   decimal.Decimal
}

// NewCart carrito vacío con pago en efectivo.
func NewCart() *Cart {
	return &Cart{PaymentType: entity.PaymentCash}
}

// FromSale recarga una venta guardada (borrador) para seguir editándola con el mismo ID.
func FromSale(s *entity.Sale) *Cart {
	lines := make([]entity.SaleItem, len(s.Items))
	copy(lines, s.Items)
	return &Cart{
		SaleID:       s.ID,
		Date:         s.Date,
		Lines:        lines,
		Discount:     s.Discount,
		PaymentType:  s.PaymentType,
		CustomerName: s.CustomerName,
		AmountPaid:   s.AmountPaid,
	}
}

// AddItem agrega quantity unidades de product. Si ya hay una línea con el mismo nombre
// se incrementa su cantidad; si no, se agrega una línea nueva con el precio de venta
// actual del producto, que queda congelado en la línea.
func (c *Cart) AddItem(product *entity.Product, quantity int) error {
	if product == nil || strings.TrimSpace(product.Name) == "" {
		return domain.NewValidationError(domain.RuleNoProduct, "seleccione un producto")
	}
	if quantity <= 0 {
		return domain.NewValidationError(domain.RuleInvalidQuantity, "la cantidad debe ser mayor a cero")
	}
	if err := domain.CheckMoney("precio de "+product.Name, product.SalePrice); err != nil {
		return err
	}
	for i := range c.Lines {
		if c.Lines[i].ProductName == product.Name {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, entity.SaleItem{
		ProductName: product.Name,
		Barcode:     product.Barcode,
		UnitPrice:   product.SalePrice,
		Quantity:    quantity,
	})
	return nil
}

// UpdateQuantity fija la cantidad de la línea index. Una cantidad <= 0 elimina la línea.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if quantity <= 0 {
		return c.RemoveItem(index)
	}
	c.Lines[index].Quantity = quantity
	return nil
}

// RemoveItem quita la línea index.
func (c *Cart) RemoveItem(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return domain.NewValidationError(domain.RuleInvalidLine, fmt.Sprintf("la línea %d no existe", index))
	}
	return nil
}

// SetDiscount fija el descuento (a lo sumo dos decimales). Un descuento mayor al total
// se acepta aquí y se rechaza al completar; los borradores lo guardan tal cual.
func (c *Cart) SetDiscount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.NewValidationError(domain.RuleNegativeDiscount, "el descuento no puede ser negativo")
	}
	if err := domain.CheckMoney("descuento", amount); err != nil {
		return err
	}
	c.Discount = amount
	return nil
}

// SetPayment fija forma de pago, monto recibido y cliente.
func (c *Cart) SetPayment(paymentType string, amountPaid decimal.Decimal, customerName string) error {
	if !entity.ValidPaymentType(paymentType) {
		return domain.NewValidationError(domain.RuleInvalidPaymentType, "forma de pago inválida (cash | credit)")
	}
	if amountPaid.IsNegative() {
		return domain.NewValidationError(domain.RulePaymentRequired, "el monto recibido no puede ser negativo")
	}
	if err := domain.CheckMoney("monto recibido", amountPaid); err != nil {
		return err
	}
	c.PaymentType = paymentType
	c.AmountPaid = amountPaid
	c.CustomerName = customerName
	return nil
}

// Total suma de las líneas.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.TotalPrice())
	}
	return total
}

// Net total menos descuento, nunca negativo.
func (c *Cart) Net() decimal.Decimal {
	net := c.Total().Sub(c.Discount)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// Totals calcula todos los montos. El vuelto sólo aplica a efectivo y nunca es negativo.
func (c *Cart) Totals() Totals {
	net := c.Net()
	change := decimal.Zero
	if c.PaymentType == entity.PaymentCash && c.AmountPaid.GreaterThan(net) {
		change = c.AmountPaid.Sub(net)
	}
	return Totals{Total: c.Total(), Discount: c.Discount, Net: net, Change: change}
}

// DiscountExceedsTotal indica el descuento inválido que bloquea la finalización.
func (c *Cart) DiscountExceedsTotal() bool {
	return c.Discount.GreaterThan(c.Total())
}

// ValidateLines revisa líneas que llegan desde fuera (recarga o petición HTTP).
func (c *Cart) ValidateLines() error {
	for i, l := range c.Lines {
		if strings.TrimSpace(l.ProductName) == "" {
			return domain.NewValidationError(domain.RuleInvalidLine, fmt.Sprintf("la línea %d no tiene producto", i+1))
		}
		if l.Quantity < 1 {
			return domain.NewValidationError(domain.RuleInvalidQuantity, fmt.Sprintf("la línea %d debe tener cantidad >= 1", i+1))
		}
		if l.UnitPrice.IsNegative() {
			return domain.NewValidationError(domain.RuleInvalidPrice, fmt.Sprintf("la línea %d tiene precio negativo", i+1))
		}
		if err := domain.CheckMoney(fmt.Sprintf("precio de la línea %d", i+1), l.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDraft un borrador sólo exige al menos una línea.
func (c *Cart) ValidateDraft() error {
	if err := c.ValidateLines(); err != nil {
		return err
	}
	if len(c.Lines) == 0 {
		return domain.NewValidationError(domain.RuleEmptyCart, "agregue al menos un producto")
	}
	return nil
}

// CompletionIssues devuelve todas las reglas que impiden completar la venta, en orden.
func (c *Cart) CompletionIssues() []*domain.ValidationError {
	var issues []*domain.ValidationError
	if err := c.ValidateDraft(); err != nil {
		ve, _ := domain.AsValidationError(err)
		issues = append(issues, ve)
	}
	if c.DiscountExceedsTotal() {
		issues = append(issues, domain.NewValidationError(domain.RuleDiscountExceedTotal, "el descuento no puede superar el total"))
	}
	switch c.PaymentType {
	case entity.PaymentCredit:
		if strings.TrimSpace(c.CustomerName) == "" {
			issues = append(issues, domain.NewValidationError(domain.RuleCustomerRequired, "ingrese el nombre del cliente para ventas a crédito"))
		}
	case entity.PaymentCash:
		if !c.AmountPaid.IsPositive() {
			issues = append(issues, domain.NewValidationError(domain.RulePaymentRequired, "ingrese el monto recibido"))
		} else if c.AmountPaid.LessThan(c.Net()) {
			issues = append(issues, domain.NewValidationError(domain.RuleInsufficientPayment, "el monto recibido no alcanza"))
		}
	default:
		issues = append(issues, domain.NewValidationError(domain.RuleInvalidPaymentType, "forma de pago inválida (cash | credit)"))
	}
	return issues
}

// ValidateCompletion devuelve la primera regla incumplida o nil.
func (c *Cart) ValidateCompletion() error {
	if issues := c.CompletionIssues(); len(issues) > 0 {
		return issues[0]
	}
	return nil
}

// ToSale valida según el estado destino y arma el snapshot a persistir.
//
// Borrador: efectivo guarda lo recibido y el vuelto calculado; crédito guarda 0.
// Completada: efectivo guarda lo recibido y el vuelto; crédito guarda el neto y vuelto 0.
func (c *Cart) ToSale(status string, now time.Time) (*entity.Sale, error) {
	switch status {
	case entity.SaleStatusDraft:
		if err := c.ValidateDraft(); err != nil {
			return nil, err
		}
	case entity.SaleStatusCompleted:
		if err := c.ValidateCompletion(); err != nil {
			return nil, err
		}
	default:
		return nil, domain.NewValidationError(domain.RuleInvalidStatus, "estado inválido (draft | completed)")
	}
	if !entity.ValidPaymentType(c.PaymentType) {
		return nil, domain.NewValidationError(domain.RuleInvalidPaymentType, "forma de pago inválida (cash | credit)")
	}

	t := c.Totals()
	amountPaid, change := decimal.Zero, decimal.Zero
	if c.PaymentType == entity.PaymentCash {
		amountPaid, change = c.AmountPaid, t.Change
	} else if status == entity.SaleStatusCompleted {
		amountPaid = t.Net
	}

	date := c.Date
	if date.IsZero() {
		date = now
	}
	items := make([]entity.SaleItem, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = entity.SaleItem{
			SaleID:      c.SaleID,
			ProductName: l.ProductName,
			Barcode:     l.Barcode,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		}
	}
	return &entity.Sale{
		ID:           c.SaleID,
		Date:         date,
		CustomerName: strings.TrimSpace(c.CustomerName),
		TotalAmount:  t.Total,
		Discount:     c.Discount,
		NetAmount:    t.Net,
		PaymentType:  c.PaymentType,
		AmountPaid:   amountPaid,
		ChangeAmount: change,
		Status:       status,
		Items:        items,
	}, nil
}
