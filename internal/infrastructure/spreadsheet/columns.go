// Package spreadsheet lee y escribe el catálogo en CSV y XLSX. La lectura es por
// encabezado: el orden de las columnas no importa y las columnas desconocidas se ignoran.
package spreadsheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Columnas reconocidas.
const (
	ColProductName = "ProductName"
	ColBarcode     = "Barcode"
	ColSalePrice   = "SalePrice"
	ColID          = "ID"
	ColCreatedAt   = "CreatedAt"
	ColUpdatedAt   = "UpdatedAt"
)

// Errores de formato del archivo.
var (
	ErrMissingNameColumn = errors.New("falta la columna ProductName")
	ErrUnsupportedFormat = errors.New("formato no soportado (use .csv o .xlsx)")
)

// StoreNameCol nombre de la columna del proveedor i (0..3).
func StoreNameCol(i int) string { return fmt.Sprintf("Store%dName", i+1) }

// StorePriceCol precio del proveedor i (0..3).
func StorePriceCol(i int) string { return fmt.Sprintf("Store%dPrice", i+1) }

// ExportHeader las 10 columnas fijas del archivo de exportación.
func ExportHeader() []string {
	h := []string{ColProductName, ColSalePrice}
	for i := 0; i < entity.MaxSuppliers; i++ {
		h = append(h, StoreNameCol(i), StorePriceCol(i))
	}
	return h
}

var knownColumns = func() map[string]string {
	cols := append(ExportHeader(), ColBarcode, ColID, ColCreatedAt, ColUpdatedAt)
	m := make(map[string]string, len(cols))
	for _, c := range cols {
		m[strings.ToLower(c)] = c
	}
	return m
}()

// canonical normaliza un encabezado ("  productname " -> "ProductName").
func canonical(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	if c, ok := knownColumns[strings.ToLower(h)]; ok {
		return c
	}
	return h
}

// Record una fila de datos. Line es el número de fila en el archivo (encabezado = 1).
type Record struct {
	Line   int
	Fields map[string]string
}

// Get valor recortado de la columna; "" si no existe.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r.Fields[col])
}

// blank fila sin ningún valor.
func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// toRecords aplica el encabezado a las filas y descarta las vacías.
func toRecords(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrMissingNameColumn
	}
	header := make([]string, len(rows[0]))
	hasName := false
	for i, h := range rows[0] {
		header[i] = canonical(h)
		if header[i] == ColProductName {
			hasName = true
		}
	}
	if !hasName {
		return nil, ErrMissingNameColumn
	}
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		fields := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(row) {
				fields[col] = row[j]
			}
		}
		records = append(records, Record{Line: i + 2, Fields: fields})
	}
	return records, nil
}

// parseMoney vacío = 0; admite separador de miles con coma. Rechaza más de dos decimales.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !domain.ValidMoney(d) {
		return decimal.Zero, fmt.Errorf("%s: máximo %d decimales", s, domain.MoneyPlaces)
	}
	return d, nil
}

// ToProduct arma el producto de la fila. Devuelve error si algún precio no es numérico
// o tiene más de dos decimales.
// No valida el nombre: eso lo decide quien importa.
func (r Record) ToProduct() (*entity.Product, error) {
	p := &entity.Product{
		ID:      r.Get(ColID),
		Name:    r.Get(ColProductName),
		Barcode: r.Get(ColBarcode),
	}
	var bad []string
	price, err := parseMoney(r.Get(ColSalePrice))
	if err != nil {
		bad = append(bad, ColSalePrice)
	}
	p.SalePrice = price
	for i := 0; i < entity.MaxSuppliers; i++ {
		sp, err := parseMoney(r.Get(StorePriceCol(i)))
		if err != nil {
			bad = append(bad, StorePriceCol(i))
		}
		p.Suppliers[i] = entity.SupplierPrice{Name: r.Get(StoreNameCol(i)), Price: sp}
	}
	if len(bad) > 0 {
		return p, fmt.Errorf("fila %d: precio inválido en %s", r.Line, strings.Join(bad, ", "))
	}
	return p, nil
}

// exportRow valores de las 10 columnas fijas.
func exportRow(p *entity.Product) []string {
	row := []string{p.Name, p.SalePrice.String()}
	for _, s := range p.Suppliers {
		row = append(row, s.Name, s.Price.String())
	}
	return row
}
