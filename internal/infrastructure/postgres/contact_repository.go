package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository (usable con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.MessagingID, &c.Note, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List busca por subcadena en nombre, teléfono e id de LINE.
func (r *ContactRepo) List(ctx context.Context, search string) ([]*entity.Contact, error) {
	query := `SELECT id, name, phone, line_id, note, created_at, updated_at FROM contacts`
	var args []any
	if search != "" {
		query += ` WHERE name ILIKE $1 OR phone ILIKE $1 OR line_id ILIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY updated_at DESC, name ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list contacts", err)
	}
	defer rows.Close()
	list := make([]*entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, wrapErr("scan contact", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list contacts", err)
	}
	return list, nil
}

// GetByID obtiene un contacto por ID.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanContact(r.q.QueryRow(ctx,
		`SELECT id, name, phone, line_id, note, created_at, updated_at FROM contacts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get contact", err)
	}
	return c, nil
}

// Create persiste un nuevo contacto.
func (r *ContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
		contact.UpdatedAt = contact.CreatedAt
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO contacts (id, name, phone, line_id, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		contact.ID, contact.Name, contact.Phone, contact.MessagingID, contact.Note,
		contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert contact", err)
	}
	return nil
}

// Update actualiza un contacto. domain.ErrNotFound si no existe.
func (r *ContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	if !validID(contact.ID) {
		return domain.ErrNotFound
	}
	err := r.q.QueryRow(ctx, `
		UPDATE contacts SET name = $2, phone = $3, line_id = $4, note = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at`,
		contact.ID, contact.Name, contact.Phone, contact.MessagingID, contact.Note, contact.UpdatedAt,
	).Scan(&contact.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr("update contact", err)
	}
	return nil
}

// Delete elimina un contacto por ID.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete contact", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de contactos.
func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, wrapErr("count contacts", err)
	}
	return n, nil
}
