package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/csvstore"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
)

// newApp arma la API con el catálogo en un CSV temporal. Las rutas de ventas,
// contactos y notas no se ejercitan aquí.
func newApp(t *testing.T, secret string, pinHash string) *fiber.App {
	t.Helper()
	store := csvstore.NewProductStore(filepath.Join(t.TempDir(), "products.csv"))
	codec := spreadsheet.Codec{}

	deps := apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(store),
		CatalogIO: catalog.NewImportUseCase(store, store, codec, codec, nil),
		CartUC:    sales.NewCartUseCase(store),
		JWTSecret: secret,
	}
	if pinHash != "" {
		deps.AuthUC = auth.NewAuthUseCase(auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "tienda-test", PINHash: pinHash})
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestProducts_CRUDPorNombre(t *testing.T) {
	app := newApp(t, "", "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Coca Cola 1.5L", "sale_price": "35",
		"suppliers": []map[string]any{{"name": "Makro", "price": "28"}, {"name": "Lotus", "price": "27.5"}},
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Lotus", created.BestSupplier)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Coca Cola 1.5L"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	path := "/api/products/" + url.PathEscape("Coca Cola 1.5L")
	resp, body = doJSON(t, app, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, http.MethodPut, path, map[string]any{"name": "Coca Cola 2L", "sale_price": "45"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = doJSON(t, app, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/products?search=2l", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+url.PathEscape("Coca Cola 2L"), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+url.PathEscape("Coca Cola 2L"), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_ValidacionDevuelveRegla(t *testing.T) {
	app := newApp(t, "", "")
	resp, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "A", "sale_price": "-1"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "INVALID_PRICE", e.Rule)
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProducts_UploadYExport(t *testing.T) {
	app := newApp(t, "", "")

	resp, err := app.Test(uploadRequest(t, "lista.csv", "ProductName,SalePrice\nAgua,7\nPan,5\nAgua,8\n"), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var res dto.ImportResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, []string{"Agua"}, res.DuplicateNames)

	resp, err = app.Test(uploadRequest(t, "lista.csv", "ProductName,SalePrice\n,7\n"), -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_PRODUCT_NAME")

	req := httptest.NewRequest(http.MethodGet, "/api/products/export?format=csv", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "products.csv")
	assert.True(t, strings.Contains(string(body), "Pan,5"))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/export?format=pdf", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPOSCart_FlujoCompleto(t *testing.T) {
	app := newApp(t, "", "")
	resp, _ := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Agua", "sale_price": "10"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/pos/cart/items", map[string]any{"product_name": "Agua", "quantity": 3}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var cart dto.CartResponse
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.Equal(t, "30", cart.TotalAmount.String())
	assert.False(t, cart.CanComplete)

	cart.Cart.AmountPaid = cart.TotalAmount
	resp, body = doJSON(t, app, http.MethodPost, "/api/pos/cart/validate", cart.Cart, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &cart))
	assert.True(t, cart.CanComplete)

	resp, body = doJSON(t, app, http.MethodPut, "/api/pos/cart/items/9", map[string]any{"cart": cart.Cart, "quantity": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_LINE")

	resp, body = doJSON(t, app, http.MethodPost, "/api/pos/cart/items", map[string]any{"product_name": "Pepsi", "quantity": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "NO_PRODUCT")
}

func TestAuth_LoginYRutasProtegidas(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	app := newApp(t, testJWTSecret, string(hash))

	resp, _ := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Agua"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "escritura sin token")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "lectura pública")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{"pin": "0000"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{"pin": "1234"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)

	resp, body = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Agua", "sale_price": "7"}, login.Token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}
