package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/csvstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ruleOf(t *testing.T, err error) string {
	t.Helper()
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "se esperaba ValidationError, llegó %v", err)
	return ve.Rule
}

func newProductUseCase(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	return usecase.NewProductUseCase(csvstore.NewProductStore(filepath.Join(t.TempDir(), "products.csv")))
}

func TestProduct_CrearConMejorPrecio(t *testing.T) {
	uc := newProductUseCase(t)
	resp, err := uc.Create(context.Background(), dto.ProductRequest{
		Name:      "  Arroz 5kg ",
		SalePrice: dec("200"),
		Suppliers: []dto.SupplierPriceDTO{
			{Name: "Makro", Price: dec("180")},
			{Name: "Lotus", Price: dec("175")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Arroz 5kg", resp.Name)
	assert.Len(t, resp.Suppliers, 4, "siempre se devuelven las 4 posiciones")
	assert.True(t, resp.BestPrice.Equal(dec("175")))
	assert.Equal(t, "Lotus", resp.BestSupplier)
	assert.NotEmpty(t, resp.ID)
}

func TestProduct_Validaciones(t *testing.T) {
	uc := newProductUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ProductRequest{Name: " "})
	assert.Equal(t, domain.RuleRequiredField, ruleOf(t, err))

	_, err = uc.Create(ctx, dto.ProductRequest{Name: "A", SalePrice: dec("-1")})
	assert.Equal(t, domain.RuleInvalidPrice, ruleOf(t, err))

	_, err = uc.Create(ctx, dto.ProductRequest{Name: "A", Suppliers: make([]dto.SupplierPriceDTO, 5)})
	assert.Equal(t, domain.RuleTooManySuppliers, ruleOf(t, err))

	_, err = uc.Create(ctx, dto.ProductRequest{Name: "A", SalePrice: dec("10.005")})
	assert.Equal(t, domain.RuleInvalidPrice, ruleOf(t, err), "más de dos decimales")

	_, err = uc.Create(ctx, dto.ProductRequest{
		Name:      "A",
		SalePrice: dec("10"),
		Suppliers: []dto.SupplierPriceDTO{{Name: "Makro", Price: dec("1.001")}},
	})
	assert.Equal(t, domain.RuleInvalidPrice, ruleOf(t, err))

	list, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, list.Total, "ningún producto inválido se guarda")
}

func TestProduct_DuplicadoYRenombre(t *testing.T) {
	uc := newProductUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ProductRequest{Name: "Agua", SalePrice: dec("7")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.ProductRequest{Name: "Leche", SalePrice: dec("25")})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.ProductRequest{Name: "Agua"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, "Agua", dto.ProductRequest{Name: "Leche"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	renamed, err := uc.Update(ctx, "Agua", dto.ProductRequest{Name: "Agua 600ml", SalePrice: dec("8")})
	require.NoError(t, err)
	assert.Equal(t, "Agua 600ml", renamed.Name)

	old, err := uc.Get(ctx, "Agua")
	require.NoError(t, err)
	assert.Nil(t, old)

	_, err = uc.Update(ctx, "No existe", dto.ProductRequest{Name: "No existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, "agua")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, uc.Delete(ctx, "Leche"))
	assert.ErrorIs(t, uc.Delete(ctx, "Leche"), domain.ErrNotFound)
}
