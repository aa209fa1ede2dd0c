package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierPriceDTO par proveedor/precio.
type SupplierPriceDTO struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductRequest entrada para crear o reemplazar un producto. Suppliers admite hasta 4 pares;
// las posiciones faltantes quedan vacías.
type ProductRequest struct {
	Name      string             `json:"name"`
	Barcode   string             `json:"barcode"`
	SalePrice decimal.Decimal    `json:"sale_price"`
	Suppliers []SupplierPriceDTO `json:"suppliers"`
}

// ProductResponse salida de un producto con el mejor precio derivado.
type ProductResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Barcode      string             `json:"barcode"`
	SalePrice    decimal.Decimal    `json:"sale_price"`
	Suppliers    []SupplierPriceDTO `json:"suppliers"`
	BestPrice    decimal.Decimal    `json:"best_price"`
	BestSupplier string             `json:"best_supplier,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ImportResult resultado de la carga masiva. DuplicateNames no se trunca.
type ImportResult struct {
	Success        bool     `json:"success"`
	Added          int      `json:"added"`
	Duplicates     int      `json:"duplicates"`
	DuplicateNames []string `json:"duplicate_names"`
	Total          int      `json:"total"`
}

// InvalidRowsDetails detalle de un archivo rechazado por filas inválidas.
type InvalidRowsDetails struct {
	Count int   `json:"count"`
	Lines []int `json:"lines"`
}
