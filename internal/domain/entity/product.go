package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxSuppliers número de pares proveedor/precio que guarda cada producto.
const MaxSuppliers = 4

// SupplierPrice precio de compra en un proveedor. Un par con nombre vacío o precio <= 0
// no participa en la comparación.
type SupplierPrice struct {
	Name  string
	Price decimal.Decimal
}

// Comparable indica si el par entra en el cálculo del mejor precio.
func (s SupplierPrice) Comparable() bool {
	return strings.TrimSpace(s.Name) != "" && s.Price.GreaterThan(decimal.Zero)
}

// Product representa un producto del catálogo. Name es único y es la clave de negocio;
// ID es un identificador estable que sobrevive a los renombres.
type Product struct {
	ID        string
	Name      string
	Barcode   string
	SalePrice decimal.Decimal
	Suppliers [MaxSuppliers]SupplierPrice
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BestOffer devuelve el proveedor con el menor precio positivo.
// ok es false si ningún proveedor califica. Ante empate gana el primero.
func (p *Product) BestOffer() (best SupplierPrice, ok bool) {
	for _, s := range p.Suppliers {
		if !s.Comparable() {
			continue
		}
		if !ok || s.Price.LessThan(best.Price) {
			best, ok = s, true
		}
	}
	return best, ok
}

// BestPrice precio mínimo entre proveedores; cero si ninguno califica.
func (p *Product) BestPrice() decimal.Decimal {
	best, ok := p.BestOffer()
	if !ok {
		return decimal.Zero
	}
	return best.Price
}

// Matches búsqueda por subcadena, sin distinguir mayúsculas, sobre nombre, código de barras
// y nombres de proveedor. Un término vacío coincide siempre.
func (p *Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	fields := []string{p.Name, p.Barcode}
	for _, s := range p.Suppliers {
		fields = append(fields, s.Name)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
