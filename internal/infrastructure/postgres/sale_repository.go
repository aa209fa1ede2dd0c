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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_date, customer_name, total_amount, discount, net_amount,
	payment_type, amount_paid, change_amount, status, created_at, updated_at`

// SaleRepo implementación de SaleRepository. Cabecera y líneas deben escribirse
// con un Querier de transacción (ver TxRunner.RunSale).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.Date, &s.CustomerName, &s.TotalAmount, &s.Discount, &s.NetAmount,
		&s.PaymentType, &s.AmountPaid, &s.ChangeAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste la cabecera. Asigna ID si viene vacío.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	now := time.Now()
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = now
	}
	if sale.UpdatedAt.IsZero() {
		sale.UpdatedAt = now
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		sale.ID, sale.Date, sale.CustomerName, sale.TotalAmount, sale.Discount, sale.NetAmount,
		sale.PaymentType, sale.AmountPaid, sale.ChangeAmount, sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert sale", err)
	}
	return nil
}

// UpdateHeader reescribe la cabecera completa; conserva created_at.
func (r *SaleRepo) UpdateHeader(ctx context.Context, sale *entity.Sale) error {
	if !validID(sale.ID) {
		return domain.ErrNotFound
	}
	if sale.UpdatedAt.IsZero() {
		sale.UpdatedAt = time.Now()
	}
	err := r.q.QueryRow(ctx, `
		UPDATE sales SET sale_date = $2, customer_name = $3, total_amount = $4, discount = $5,
			net_amount = $6, payment_type = $7, amount_paid = $8, change_amount = $9,
			status = $10, updated_at = $11
		WHERE id = $1
		RETURNING created_at`,
		sale.ID, sale.Date, sale.CustomerName, sale.TotalAmount, sale.Discount,
		sale.NetAmount, sale.PaymentType, sale.AmountPaid, sale.ChangeAmount,
		sale.Status, sale.UpdatedAt,
	).Scan(&sale.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr("update sale", err)
	}
	return nil
}

// ReplaceItems borra las líneas de la venta y copia las nuevas con IDs nuevos.
// total_price es columna generada, no se escribe.
func (r *SaleRepo) ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID); err != nil {
		return wrapErr("delete sale items", err)
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([][]any, len(items))
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].SaleID = saleID
		it := items[i]
		rows[i] = []any{it.ID, saleID, i, it.ProductName, it.Barcode, it.UnitPrice, it.Quantity}
	}
	_, err := r.q.CopyFrom(ctx, pgx.Identifier{"sale_items"},
		[]string{"id", "sale_id", "position", "product_name", "barcode", "unit_price", "quantity"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return wrapErr("copy sale items", err)
	}
	return nil
}

// LockStatus toma un lock de fila; dentro de una tx serializa ediciones de la misma venta.
func (r *SaleRepo) LockStatus(ctx context.Context, id string) (string, error) {
	if !validID(id) {
		return "", nil
	}
	var status string
	err := r.q.QueryRow(ctx, `SELECT status FROM sales WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", wrapErr("lock sale", err)
	}
	return status, nil
}

// GetByID obtiene la venta con sus líneas en orden.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get sale", err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas con sus líneas; status vacío = todas.
func (r *SaleRepo) List(ctx context.Context, status string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY updated_at DESC, sale_date ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list sales", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, wrapErr("scan sale", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list sales", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga las líneas de todas las ventas en una sola consulta.
func (r *SaleRepo) attachItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = uuid.MustParse(s.ID)
		byID[s.ID] = s
		s.Items = make([]entity.SaleItem, 0)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_name, barcode, unit_price, quantity
		FROM sale_items WHERE sale_id = ANY($1)
		ORDER BY sale_id, position`, ids)
	if err != nil {
		return wrapErr("list sale items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductName, &it.Barcode, &it.UnitPrice, &it.Quantity); err != nil {
			return wrapErr("scan sale item", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("list sale items", err)
	}
	return nil
}

// Delete elimina la venta; sus líneas caen por ON DELETE CASCADE.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumCompleted ventana semiabierta [from, to) sobre ventas completadas.
func (r *SaleRepo) SumCompleted(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	var (
		total decimal.Decimal
		count int
	)
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(net_amount), 0), COUNT(*)
		FROM sales
		WHERE status = 'completed' AND sale_date >= $1 AND sale_date < $2`,
		from, to,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, wrapErr("sum completed sales", err)
	}
	return total, count, nil
}
