package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, barcode, sale_price,
	store1_name, store1_price, store2_name, store2_price,
	store3_name, store3_price, store4_name, store4_price,
	created_at, updated_at`

var productCopyColumns = []string{
	"id", "name", "barcode", "sale_price",
	"store1_name", "store1_price", "store2_name", "store2_price",
	"store3_name", "store3_price", "store4_name", "store4_price",
	"created_at", "updated_at",
}

// ProductRepo implementación del catálogo sobre la tabla products (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	s := &p.Suppliers
	err := row.Scan(&p.ID, &p.Name, &p.Barcode, &p.SalePrice,
		&s[0].Name, &s[0].Price, &s[1].Name, &s[1].Price,
		&s[2].Name, &s[2].Price, &s[3].Name, &s[3].Price,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// productArgs valores en el orden de productCopyColumns.
func productArgs(p *entity.Product) []any {
	s := p.Suppliers
	return []any{p.ID, p.Name, p.Barcode, p.SalePrice,
		s[0].Name, s[0].Price, s[1].Name, s[1].Price,
		s[2].Name, s[2].Price, s[3].Name, s[3].Price,
		p.CreatedAt, p.UpdatedAt}
}

func stampNew(p *entity.Product) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
}

// List busca por subcadena en nombre, código de barras y nombres de proveedor.
func (r *ProductRepo) List(ctx context.Context, search string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if search != "" {
		query += ` WHERE name ILIKE $1 OR barcode ILIKE $1
			OR store1_name ILIKE $1 OR store2_name ILIKE $1
			OR store3_name ILIKE $1 OR store4_name ILIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY updated_at DESC, name ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapErr("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list products", err)
	}
	return list, nil
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get product", err)
	}
	return p, nil
}

// Create persiste un producto nuevo. Nombre repetido -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	stampNew(product)
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		productArgs(product)...)
	if err != nil {
		return wrapErr("insert product", err)
	}
	return nil
}

// UpdateByName reemplaza la fila de oldName; conserva id y created_at.
func (r *ProductRepo) UpdateByName(ctx context.Context, oldName string, product *entity.Product) error {
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = time.Now()
	}
	s := product.Suppliers
	err := r.q.QueryRow(ctx, `
		UPDATE products SET name = $2, barcode = $3, sale_price = $4,
			store1_name = $5, store1_price = $6, store2_name = $7, store2_price = $8,
			store3_name = $9, store3_price = $10, store4_name = $11, store4_price = $12,
			updated_at = $13
		WHERE name = $1
		RETURNING id, created_at`,
		oldName, product.Name, product.Barcode, product.SalePrice,
		s[0].Name, s[0].Price, s[1].Name, s[1].Price,
		s[2].Name, s[2].Price, s[3].Name, s[3].Price,
		product.UpdatedAt,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr("update product", err)
	}
	return nil
}

// DeleteByName elimina por nombre. domain.ErrNotFound si no había fila.
func (r *ProductRepo) DeleteByName(ctx context.Context, name string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE name = $1`, name)
	if err != nil {
		return wrapErr("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Names devuelve el conjunto de nombres del catálogo.
func (r *ProductRepo) Names(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM products`)
	if err != nil {
		return nil, wrapErr("list product names", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr("scan product names", err)
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

// BulkCreate inserta con un solo COPY; la sentencia es atómica, así que una fila
// inválida o repetida deja el catálogo intacto.
func (r *ProductRepo) BulkCreate(ctx context.Context, products []*entity.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	rows := make([][]any, len(products))
	for i, p := range products {
		stampNew(p)
		rows[i] = productArgs(p)
	}
	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"products"}, productCopyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, wrapErr("copy products", err)
	}
	return int(n), nil
}

// Summary cantidad de productos y suma simple de sale_price.
func (r *ProductRepo) Summary(ctx context.Context) (int, decimal.Decimal, error) {
	var (
		count int
		value decimal.Decimal
	)
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(sale_price), 0) FROM products`,
	).Scan(&count, &value)
	if err != nil {
		return 0, decimal.Zero, wrapErr("products summary", err)
	}
	return count, value, nil
}
