package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo. Tiene dos adaptadores
// intercambiables: tabla products (postgres) y archivo CSV plano (csvstore).
//
// Convenciones: los Get devuelven (nil, nil) si no existe; Update/Delete devuelven
// domain.ErrNotFound si ninguna fila coincide; Create/Update devuelven domain.ErrDuplicate
// si el nombre ya existe.
type ProductRepository interface {
	// List devuelve los productos que coinciden con search (vacío = todos),
	// ordenados por updated_at desc y nombre asc.
	List(ctx context.Context, search string) ([]*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	// UpdateByName reemplaza la fila cuyo nombre es oldName (permite renombrar).
	UpdateByName(ctx context.Context, oldName string, product *entity.Product) error
	DeleteByName(ctx context.Context, name string) error
	// Names devuelve el conjunto de nombres existentes (importación masiva).
	Names(ctx context.Context) (map[string]struct{}, error)
	// BulkCreate inserta todos o ninguno.
	BulkCreate(ctx context.Context, products []*entity.Product) (int, error)
	// Summary cantidad de productos y suma simple de precios de venta.
	Summary(ctx context.Context) (count int, saleValue decimal.Decimal, err error)
}
