package catalog_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/csvstore"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/spreadsheet"
)

func newUseCase(t *testing.T) (*catalog.ImportUseCase, *csvstore.ProductStore) {
	t.Helper()
	store := csvstore.NewProductStore(filepath.Join(t.TempDir(), "products.csv"))
	codec := spreadsheet.Codec{}
	return catalog.NewImportUseCase(store, store, codec, codec, nil), store
}

func TestImport_SeparaNuevosYDuplicados(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t)
	require.NoError(t, store.Create(ctx, &entity.Product{Name: "Agua", SalePrice: decimal.NewFromInt(7)}))

	file := "ProductName,Barcode,SalePrice,Store1Name,Store1Price\n" +
		"Agua,1,7,,\n" +
		"Leche,2,25,Makro,20\n" +
		"Pan,3,15,,\n" +
		"Leche,2,26,,\n"

	res, err := uc.Import(ctx, "lista.csv", strings.NewReader(file))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 2, res.Duplicates)
	assert.Equal(t, []string{"Agua", "Leche"}, res.DuplicateNames)

	leche, err := store.GetByName(ctx, "Leche")
	require.NoError(t, err)
	require.NotNil(t, leche)
	assert.True(t, leche.SalePrice.Equal(decimal.NewFromInt(25)), "gana la primera fila del archivo")
	assert.Equal(t, "Makro", leche.Suppliers[0].Name)
}

func TestImport_FilaSinNombreRechazaTodo(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t)

	file := "ProductName,SalePrice\nAgua,7\n,10\nPan,5\n  ,3\n"
	_, err := uc.Import(ctx, "lista.csv", strings.NewReader(file))

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleMissingProductName, ve.Rule)
	assert.Equal(t, dto.InvalidRowsDetails{Count: 2, Lines: []int{3, 5}}, ve.Details)

	list, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list, "no se inserta nada")
}

func TestImport_PrecioInvalidoRechazaTodo(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.Import(context.Background(), "lista.csv", strings.NewReader("ProductName,SalePrice\nAgua,siete\nPan,-1\n"))
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleInvalidPrice, ve.Rule)
	assert.Equal(t, dto.InvalidRowsDetails{Count: 2, Lines: []int{2, 3}}, ve.Details)
}

func TestImport_PrecioConMasDeDosDecimales(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Import(ctx, "lista.csv", strings.NewReader("ProductName,SalePrice,Store1Price\nAgua,7.005,5\nPan,5.50,4.25\nLeche,25,19.999\n"))
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleInvalidPrice, ve.Rule)
	assert.Equal(t, dto.InvalidRowsDetails{Count: 2, Lines: []int{2, 4}}, ve.Details)

	list, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImport_ArchivoSinFilasOSinColumna(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Import(context.Background(), "vacio.csv", strings.NewReader("ProductName,SalePrice\n"))
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleInvalidFile, ve.Rule)

	_, err = uc.Import(context.Background(), "x.csv", strings.NewReader("Nombre,Precio\nAgua,7\n"))
	ve, ok = domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleInvalidFile, ve.Rule)

	_, err = uc.Import(context.Background(), "x.pdf", strings.NewReader("ProductName\nAgua\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_CSVYFormatoInvalido(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t)
	require.NoError(t, store.Create(ctx, &entity.Product{Name: "Agua", Barcode: "885", SalePrice: decimal.NewFromInt(7)}))

	var buf bytes.Buffer
	require.NoError(t, uc.Export(ctx, "", &buf))
	out := strings.TrimPrefix(buf.String(), "\ufeff")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ProductName,SalePrice,Store1Name"))
	assert.True(t, strings.HasPrefix(lines[1], "Agua,7,"))

	err := uc.Export(ctx, "pdf", &buf)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.RuleInvalidFile, ve.Rule)
}
