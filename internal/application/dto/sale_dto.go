package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineDTO línea del carrito o de una venta. TotalPrice se recalcula siempre.
type CartLineDTO struct {
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// CartDTO estado del carrito que viaja entre la UI y el servidor.
type CartDTO struct {
	SaleID       string          `json:"sale_id,omitempty"`
	SaleDate     *time.Time      `json:"sale_date,omitempty"` // fecha del borrador recargado
	Items        []CartLineDTO   `json:"items"`
	Discount     decimal.Decimal `json:"discount"`
	PaymentType  string          `json:"payment_type"`
	CustomerName string          `json:"customer_name"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// CartIssueDTO regla que impide completar la venta.
type CartIssueDTO struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// CartResponse carrito normalizado con totales e impedimentos para completar.
type CartResponse struct {
	Cart         CartDTO         `json:"cart"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
	CanComplete  bool            `json:"can_complete"`
	Issues       []CartIssueDTO  `json:"issues"`
}

// AddCartItemRequest agrega un producto del catálogo por nombre.
type AddCartItemRequest struct {
	Cart        CartDTO `json:"cart"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
}

// UpdateCartItemRequest fija la cantidad de una línea (<= 0 la elimina).
type UpdateCartItemRequest struct {
	Cart     CartDTO `json:"cart"`
	Quantity int     `json:"quantity"`
}

// CartDiscountRequest fija el descuento.
type CartDiscountRequest struct {
	Cart     CartDTO         `json:"cart"`
	Discount decimal.Decimal `json:"discount"`
}

// SaveSaleRequest guarda una venta. Status: draft | completed. Los totales que mande
// el cliente se ignoran.
type SaveSaleRequest struct {
	SaleDate     *time.Time      `json:"sale_date"`
	CustomerName string          `json:"customer_name"`
	Discount     decimal.Decimal `json:"discount"`
	PaymentType  string          `json:"payment_type"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Status       string          `json:"status"`
	Items        []CartLineDTO   `json:"items"`
}

// SaleItemResponse línea persistida.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID           string             `json:"id"`
	SaleDate     time.Time          `json:"sale_date"`
	CustomerName string             `json:"customer_name"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Discount     decimal.Decimal    `json:"discount"`
	NetAmount    decimal.Decimal    `json:"net_amount"`
	PaymentType  string             `json:"payment_type"`
	AmountPaid   decimal.Decimal    `json:"amount_paid"`
	ChangeAmount decimal.Decimal    `json:"change_amount"`
	Status       string             `json:"status"`
	Items        []SaleItemResponse `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
