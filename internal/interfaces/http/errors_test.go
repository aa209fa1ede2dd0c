package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
)

// stubContacts devuelve err en todas las operaciones; con wait bloquea hasta que
// venza el contexto de la petición.
type stubContacts struct {
	err  error
	wait bool
}

func (s stubContacts) fail(ctx context.Context) error {
	if s.wait {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

func (s stubContacts) List(ctx context.Context, _ string) ([]*entity.Contact, error) {
	return nil, s.fail(ctx)
}
func (s stubContacts) GetByID(ctx context.Context, _ string) (*entity.Contact, error) {
	return nil, s.fail(ctx)
}
func (s stubContacts) Create(ctx context.Context, _ *entity.Contact) error { return s.fail(ctx) }
func (s stubContacts) Update(ctx context.Context, _ *entity.Contact) error { return s.fail(ctx) }
func (s stubContacts) Delete(ctx context.Context, _ string) error { return s.fail(ctx) }
func (s stubContacts) Count(ctx context.Context) (int, error) { return 0, s.fail(ctx) }

func newContactsApp(repo stubContacts, timeout time.Duration) *fiber.App {
	app := fiber.New()
	if timeout > 0 {
		app.Use(apphttp.Timeout(timeout))
	}
	apphttp.Router(app, apphttp.RouterDeps{ContactUC: usecase.NewContactUseCase(repo)})
	return app
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestErrores_AlmacenamientoNoDisponibleEs503(t *testing.T) {
	readOnly := &pgconn.PgError{Code: "25006", Message: "cannot execute INSERT in a read-only transaction"}
	app := newContactsApp(stubContacts{
		err: fmt.Errorf("insert contact: %w: %w", domain.ErrStoreUnavailable, readOnly),
	}, 0)

	resp, body := doJSON(t, app, http.MethodPost, "/api/contacts", map[string]any{"name": "Lotus"}, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	out := decodeError(t, body)
	assert.Equal(t, "STORE_UNAVAILABLE", out.Code)
	assert.NotContains(t, string(body), "read-only transaction", "no se filtra el error del driver")
}

func TestErrores_DeadlineDelContextoEsTimeout(t *testing.T) {
	app := newContactsApp(stubContacts{wait: true}, 20*time.Millisecond)

	resp, body := doJSON(t, app, http.MethodGet, "/api/contacts", nil, "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "TIMEOUT", decodeError(t, body).Code)
}

func TestErrores_DesconocidoEs500Generico(t *testing.T) {
	app := newContactsApp(stubContacts{err: errors.New("pq: relation \"contacts\" does not exist")}, 0)

	resp, body := doJSON(t, app, http.MethodGet, "/api/contacts", nil, "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	out := decodeError(t, body)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno", out.Message)
	assert.NotContains(t, string(body), "relation", "el detalle interno no llega al cliente")
}

func TestErrores_NoEncontradoYValidacion(t *testing.T) {
	app := newContactsApp(stubContacts{err: domain.ErrNotFound}, 0)

	resp, body := doJSON(t, app, http.MethodPut, "/api/contacts/no-existe", map[string]any{"name": "Lotus"}, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/contacts/no-existe", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/contacts", map[string]any{"name": " "}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decodeError(t, body)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, domain.RuleRequiredField, out.Rule)
}
