package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	// Create persiste sólo la cabecera; asigna ID si viene vacío.
	Create(ctx context.Context, sale *entity.Sale) error
	// UpdateHeader actualiza la cabecera. domain.ErrNotFound si no existe.
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	// ReplaceItems borra todas las líneas de la venta e inserta las nuevas.
	ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error
	// LockStatus bloquea la fila (FOR UPDATE dentro de tx) y devuelve su estado; "" si no existe.
	LockStatus(ctx context.Context, id string) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List filtra por estado (vacío = todos), orden updated_at desc, sale_date asc.
	List(ctx context.Context, status string) ([]*entity.Sale, error)
	Delete(ctx context.Context, id string) error
	// SumCompleted suma net_amount y cuenta ventas completadas con fecha en [from, to).
	SumCompleted(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error)
}
