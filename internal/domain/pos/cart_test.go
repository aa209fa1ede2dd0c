package pos_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/pos"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(name, price string) *entity.Product {
	return &entity.Product{Name: name, Barcode: "bc-" + name, SalePrice: dec(price)}
}

// requireRule verifica que err sea un ValidationError con la regla indicada.
func requireRule(t *testing.T, err error, rule string) {
	t.Helper()
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "se esperaba ValidationError, llegó %T", err)
	assert.Equal(t, rule, ve.Rule)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// checkInvariants total = Σ líneas y cada línea = precio × cantidad.
func checkInvariants(t *testing.T, c *pos.Cart) {
	t.Helper()
	sum := decimal.Zero
	for _, l := range c.Lines {
		assert.True(t, l.TotalPrice().Equal(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))))
		sum = sum.Add(l.TotalPrice())
	}
	assert.True(t, c.Total().Equal(sum), "total %s != suma %s", c.Total(), sum)
}

func TestAddItem_MismoProductoIncrementaCantidad(t *testing.T) {
	c := pos.NewCart()
	p := product("Agua", "10")

	require.NoError(t, c.AddItem(p, 2))
	require.NoError(t, c.AddItem(p, 3))

	require.Len(t, c.Lines, 1, "no debe duplicar la línea")
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].TotalPrice().Equal(dec("50")))
	checkInvariants(t, c)
}

func TestAddItem_PrecioCongeladoAlAgregar(t *testing.T) {
	c := pos.NewCart()
	p := product("Leche", "25")
	require.NoError(t, c.AddItem(p, 1))

	p.SalePrice = dec("99") // cambio posterior en el catálogo
	require.NoError(t, c.AddItem(p, 1))

	assert.True(t, c.Lines[0].UnitPrice.Equal(dec("25")), "la línea conserva el precio del momento en que se agregó")
	assert.True(t, c.Total().Equal(dec("50")))
}

func TestAddItem_Validaciones(t *testing.T) {
	c := pos.NewCart()
	requireRule(t, c.AddItem(nil, 1), domain.RuleNoProduct)
	requireRule(t, c.AddItem(product("Pan", "5"), 0), domain.RuleInvalidQuantity)
	requireRule(t, c.AddItem(product("Pan", "5"), -2), domain.RuleInvalidQuantity)
	assert.Empty(t, c.Lines)
}

func TestUpdateQuantity(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "10"), 1))
	require.NoError(t, c.AddItem(product("B", "7.25"), 1))

	require.NoError(t, c.UpdateQuantity(1, 4))
	assert.Equal(t, 4, c.Lines[1].Quantity)
	assert.True(t, c.Total().Equal(dec("39")))
	checkInvariants(t, c)

	require.NoError(t, c.UpdateQuantity(0, 0), "cantidad 0 elimina la línea")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "B", c.Lines[0].ProductName)
	checkInvariants(t, c)

	requireRule(t, c.UpdateQuantity(5, 1), domain.RuleInvalidLine)
}

func TestRemoveItem(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "10"), 1))
	require.NoError(t, c.AddItem(product("B", "20"), 1))
	require.NoError(t, c.AddItem(product("C", "30"), 1))

	require.NoError(t, c.RemoveItem(1))
	require.Len(t, c.Lines, 2)
	assert.Equal(t, "A", c.Lines[0].ProductName)
	assert.Equal(t, "C", c.Lines[1].ProductName)
	assert.True(t, c.Total().Equal(dec("40")))

	requireRule(t, c.RemoveItem(-1), domain.RuleInvalidLine)
}

func TestNet_NuncaNegativo(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "100"), 1))
	require.NoError(t, c.SetDiscount(dec("150")))

	assert.True(t, c.Net().IsZero())
	assert.True(t, c.DiscountExceedsTotal())
	requireRule(t, c.SetDiscount(dec("-1")), domain.RuleNegativeDiscount)
}

// Ejemplo: total 500, descuento 50 → neto 450; paga 500 → vuelto 50; paga 400 → bloqueado.
func TestCompletar_EfectivoEjemplo(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("Combo", "250"), 2))
	require.NoError(t, c.SetDiscount(dec("50")))
	require.NoError(t, c.SetPayment(entity.PaymentCash, dec("500"), ""))

	tot := c.Totals()
	assert.True(t, tot.Total.Equal(dec("500")))
	assert.True(t, tot.Net.Equal(dec("450")))
	assert.True(t, tot.Change.Equal(dec("50")))

	sale, err := c.ToSale(entity.SaleStatusCompleted, now)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.True(t, sale.AmountPaid.Equal(dec("500")))
	assert.True(t, sale.ChangeAmount.Equal(dec("50")))
	assert.True(t, sale.NetAmount.Equal(dec("450")))
	assert.Equal(t, now, sale.Date)

	require.NoError(t, c.SetPayment(entity.PaymentCash, dec("400"), ""))
	_, err = c.ToSale(entity.SaleStatusCompleted, now)
	requireRule(t, err, domain.RuleInsufficientPayment)
}

func TestCompletar_EfectivoSinMonto(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "10"), 1))
	_, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	requireRule(t, err, domain.RulePaymentRequired)
}

func TestCompletar_CreditoRequiereCliente(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "120"), 1))
	require.NoError(t, c.SetPayment(entity.PaymentCredit, decimal.Zero, "   "))

	_, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	requireRule(t, err, domain.RuleCustomerRequired)

	require.NoError(t, c.SetPayment(entity.PaymentCredit, decimal.Zero, " Khun Somchai "))
	sale, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Khun Somchai", sale.CustomerName)
	assert.True(t, sale.AmountPaid.Equal(dec("120")), "crédito completado registra el neto como pagado")
	assert.True(t, sale.ChangeAmount.IsZero())
}

func TestDescuentoExcesivo_BloqueaCompletarPeroNoBorrador(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "100"), 1))
	require.NoError(t, c.SetDiscount(dec("120")))
	require.NoError(t, c.SetPayment(entity.PaymentCash, dec("100"), ""))

	_, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	requireRule(t, err, domain.RuleDiscountExceedTotal)

	draft, err := c.ToSale(entity.SaleStatusDraft, time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusDraft, draft.Status)
	assert.True(t, draft.Discount.Equal(dec("120")))
	assert.True(t, draft.NetAmount.IsZero())
}

func TestCarritoVacio_BloqueaAmbos(t *testing.T) {
	c := pos.NewCart()
	_, err := c.ToSale(entity.SaleStatusDraft, time.Now())
	requireRule(t, err, domain.RuleEmptyCart)
	_, err = c.ToSale(entity.SaleStatusCompleted, time.Now())
	requireRule(t, err, domain.RuleEmptyCart)
}

func TestBorradorCredito_SinPagoNiVuelto(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "80"), 1))
	require.NoError(t, c.SetPayment(entity.PaymentCredit, dec("500"), ""))

	sale, err := c.ToSale(entity.SaleStatusDraft, time.Now())
	require.NoError(t, err, "el borrador no exige cliente")
	assert.True(t, sale.AmountPaid.IsZero())
	assert.True(t, sale.ChangeAmount.IsZero())
}

func TestCompletionIssues_ListaTodasLasReglas(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.SetDiscount(dec("10")))

	issues := c.CompletionIssues()
	rules := make([]string, 0, len(issues))
	for _, i := range issues {
		rules = append(rules, i.Rule)
	}
	assert.Equal(t, []string{domain.RuleEmptyCart, domain.RuleDiscountExceedTotal, domain.RulePaymentRequired}, rules)
}

func TestFromSale_ConservaIDYLineas(t *testing.T) {
	saved := &entity.Sale{
		ID:          "sale-1",
		PaymentType: entity.PaymentCash,
		Discount:    dec("5"),
		Status:      entity.SaleStatusDraft,
		Items: []entity.SaleItem{
			{ProductName: "A", UnitPrice: dec("10"), Quantity: 2},
		},
	}
	c := pos.FromSale(saved)
	require.NoError(t, c.AddItem(product("A", "999"), 1))

	assert.Equal(t, "sale-1", c.SaleID)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].UnitPrice.Equal(dec("10")))
	assert.Equal(t, 2, saved.Items[0].Quantity, "la venta original no se modifica")

	sale, err := c.ToSale(entity.SaleStatusDraft, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "sale-1", sale.ID)
	assert.Equal(t, "sale-1", sale.Items[0].SaleID)
}

func TestValidateLines_RechazaLineasExternasInvalidas(t *testing.T) {
	c := pos.NewCart()
	c.Lines = []entity.SaleItem{{ProductName: "A", UnitPrice: dec("1"), Quantity: 0}}
	requireRule(t, c.ValidateDraft(), domain.RuleInvalidQuantity)

	c.Lines = []entity.SaleItem{{ProductName: "A", UnitPrice: dec("-1"), Quantity: 1}}
	requireRule(t, c.ValidateDraft(), domain.RuleInvalidPrice)

	c.Lines = []entity.SaleItem{{ProductName: " ", UnitPrice: dec("1"), Quantity: 1}}
	requireRule(t, c.ValidateDraft(), domain.RuleInvalidLine)
}

func TestToSale_EstadoInvalido(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "1"), 1))
	_, err := c.ToSale("void", time.Now())
	requireRule(t, err, domain.RuleInvalidStatus)
}

// Los montos se guardan con dos decimales; más precisión rompería total = Σ líneas al persistir.
func TestMontos_MasDeDosDecimales(t *testing.T) {
	c := pos.NewCart()
	requireRule(t, c.AddItem(product("Chicle", "0.335"), 3), domain.RuleInvalidPrice)
	assert.Empty(t, c.Lines)

	c.Lines = []entity.SaleItem{{ProductName: "Chicle", UnitPrice: dec("0.335"), Quantity: 3}}
	requireRule(t, c.ValidateDraft(), domain.RuleInvalidPrice)
	_, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	requireRule(t, err, domain.RuleInvalidPrice)

	c = pos.NewCart()
	require.NoError(t, c.AddItem(product("Chicle", "0.34"), 3))
	requireRule(t, c.SetDiscount(dec("1.005")), domain.RuleInvalidPrice)
	requireRule(t, c.SetPayment(entity.PaymentCash, dec("1.005"), ""), domain.RuleInvalidPrice)
	requireRule(t, c.SetPayment(entity.PaymentCash, dec("99999999999"), ""), domain.RuleInvalidPrice)
	assert.True(t, c.Discount.IsZero(), "el descuento rechazado no se aplica")

	require.NoError(t, c.SetPayment(entity.PaymentCash, dec("1.10"), ""))
	sale, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	require.NoError(t, err)
	sum := decimal.Zero
	for _, it := range sale.Items {
		sum = sum.Add(it.TotalPrice())
	}
	assert.True(t, sale.TotalAmount.Equal(sum))
	assert.True(t, sale.TotalAmount.Equal(sale.TotalAmount.Round(2)))
	assert.True(t, sale.ChangeAmount.Equal(dec("0.08")))
	checkInvariants(t, c)
}

func TestToSale_EfectivoSinClienteNoInventaNombre(t *testing.T) {
	c := pos.NewCart()
	require.NoError(t, c.AddItem(product("A", "10"), 1))
	require.NoError(t, c.SetPayment(entity.PaymentCash, dec("10"), "  "))

	sale, err := c.ToSale(entity.SaleStatusCompleted, time.Now())
	require.NoError(t, err)
	assert.Empty(t, sale.CustomerName)
}
