package entity

import "github.com/shopspring/decimal"

// SaleItem línea de venta. UnitPrice es el precio de venta del producto al momento de agregarlo.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductName string
	Barcode     string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// TotalPrice siempre se deriva de UnitPrice × Quantity.
func (i SaleItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
