package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Completed es terminal.
const (
	SaleStatusDraft     = "draft"
	SaleStatusCompleted = "completed"
)

// Formas de pago.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// Sale cabecera de una venta con sus líneas (snapshot, no referencia viva al catálogo).
type Sale struct {
	ID           string
	Date         time.Time
	CustomerName string
	TotalAmount  decimal.Decimal // suma de las líneas
	Discount     decimal.Decimal
	NetAmount    decimal.Decimal // max(0, TotalAmount - Discount)
	PaymentType  string
	AmountPaid   decimal.Decimal
	ChangeAmount decimal.Decimal
	Status       string
	Items        []SaleItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCompleted indica si la venta ya no admite cambios.
func (s *Sale) IsCompleted() bool { return s.Status == SaleStatusCompleted }

// ValidSaleStatus reporta si status es un estado conocido.
func ValidSaleStatus(status string) bool {
	return status == SaleStatusDraft || status == SaleStatusCompleted
}

// ValidPaymentType reporta si pt es una forma de pago conocida.
func ValidPaymentType(pt string) bool {
	return pt == PaymentCash || pt == PaymentCredit
}
