package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBestOffer_MinimoEntreProveedoresValidos(t *testing.T) {
	p := &entity.Product{
		Name: "Arroz 5kg",
		Suppliers: [entity.MaxSuppliers]entity.SupplierPrice{
			{Name: "Makro", Price: dec("180")},
			{Name: "Lotus", Price: dec("175.50")},
			{Name: "", Price: dec("10")},    // sin nombre: excluido
			{Name: "BigC", Price: dec("0")}, // sin precio: excluido
		},
	}

	best, ok := p.BestOffer()
	assert.True(t, ok)
	assert.Equal(t, "Lotus", best.Name)
	assert.True(t, best.Price.Equal(dec("175.50")))
	assert.True(t, p.BestPrice().Equal(dec("175.50")))
}

func TestBestOffer_SinProveedores(t *testing.T) {
	p := &entity.Product{Name: "Hielo"}
	_, ok := p.BestOffer()
	assert.False(t, ok)
	assert.True(t, p.BestPrice().IsZero())
}

func TestBestOffer_PrecioNegativoExcluido(t *testing.T) {
	p := &entity.Product{
		Suppliers: [entity.MaxSuppliers]entity.SupplierPrice{
			{Name: "A", Price: dec("-5")},
			{Name: "B", Price: dec("12")},
		},
	}
	best, ok := p.BestOffer()
	assert.True(t, ok)
	assert.Equal(t, "B", best.Name)
}

func TestBestOffer_EmpateGanaElPrimero(t *testing.T) {
	p := &entity.Product{
		Suppliers: [entity.MaxSuppliers]entity.SupplierPrice{
			{Name: "A", Price: dec("20")},
			{Name: "B", Price: dec("20")},
		},
	}
	best, _ := p.BestOffer()
	assert.Equal(t, "A", best.Name)
}

func TestProductMatches(t *testing.T) {
	p := &entity.Product{
		Name:    "Coca Cola 1.5L",
		Barcode: "8851959132012",
		Suppliers: [entity.MaxSuppliers]entity.SupplierPrice{
			{Name: "Makro", Price: dec("30")},
		},
	}
	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("coca"))
	assert.True(t, p.Matches("132012"))
	assert.True(t, p.Matches("MAKRO"))
	assert.False(t, p.Matches("pepsi"))
}

func TestSaleItemTotalPrice(t *testing.T) {
	item := entity.SaleItem{UnitPrice: dec("12.50"), Quantity: 4}
	assert.True(t, item.TotalPrice().Equal(dec("50")))
}

func TestContactMatches(t *testing.T) {
	c := &entity.Contact{Name: "Somchai", Phone: "081-234-5678", MessagingID: "somchai_shop"}
	assert.True(t, c.Matches("som"))
	assert.True(t, c.Matches("234"))
	assert.True(t, c.Matches("_SHOP"))
	assert.False(t, c.Matches("lotus"))
}
