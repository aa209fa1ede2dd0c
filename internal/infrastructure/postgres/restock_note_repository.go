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

var _ repository.RestockNoteRepository = (*RestockNoteRepo)(nil)

// RestockNoteRepo notas de pedido sobre order_notes y order_note_items.
type RestockNoteRepo struct {
	q Querier
}

// NewRestockNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestockNoteRepository(q Querier) *RestockNoteRepo {
	return &RestockNoteRepo{q: q}
}

func scanNote(row rowScanner) (*entity.RestockNote, error) {
	var n entity.RestockNote
	if err := row.Scan(&n.ID, &n.Name, &n.Date, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste la cabecera de la nota.
func (r *RestockNoteRepo) Create(ctx context.Context, note *entity.RestockNote) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
		note.UpdatedAt = note.CreatedAt
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_notes (id, note_name, note_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.Name, note.Date, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert order note", err)
	}
	return nil
}

// UpdateHeader actualiza nombre y fecha. domain.ErrNotFound si no existe.
func (r *RestockNoteRepo) UpdateHeader(ctx context.Context, note *entity.RestockNote) error {
	if !validID(note.ID) {
		return domain.ErrNotFound
	}
	err := r.q.QueryRow(ctx, `
		UPDATE order_notes SET note_name = $2, note_date = $3, updated_at = $4
		WHERE id = $1
		RETURNING created_at`,
		note.ID, note.Name, note.Date, note.UpdatedAt,
	).Scan(&note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return wrapErr("update order note", err)
	}
	return nil
}

// ReplaceItems reemplaza la lista completa; los IDs anteriores se descartan.
func (r *RestockNoteRepo) ReplaceItems(ctx context.Context, noteID string, items []entity.RestockItem) ([]entity.RestockItem, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_note_items WHERE note_id = $1`, noteID); err != nil {
		return nil, wrapErr("delete order note items", err)
	}
	out := make([]entity.RestockItem, len(items))
	if len(items) == 0 {
		return out, nil
	}
	now := time.Now()
	rows := make([][]any, len(items))
	for i, it := range items {
		out[i] = entity.RestockItem{
			ID:          uuid.New().String(),
			NoteID:      noteID,
			ItemName:    it.ItemName,
			IsCompleted: it.IsCompleted,
			CreatedAt:   now,
		}
		rows[i] = []any{out[i].ID, noteID, i, it.ItemName, it.IsCompleted, now}
	}
	_, err := r.q.CopyFrom(ctx, pgx.Identifier{"order_note_items"},
		[]string{"id", "note_id", "position", "item_name", "is_completed", "created_at"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return nil, wrapErr("copy order note items", err)
	}
	return out, nil
}

// GetByID nota con sus ítems.
func (r *RestockNoteRepo) GetByID(ctx context.Context, id string) (*entity.RestockNote, error) {
	if !validID(id) {
		return nil, nil
	}
	n, err := scanNote(r.q.QueryRow(ctx, `
		SELECT id, note_name, note_date, created_at, updated_at
		FROM order_notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get order note", err)
	}
	if err := r.attachItems(ctx, []*entity.RestockNote{n}); err != nil {
		return nil, err
	}
	return n, nil
}

// List todas las notas, la más recientemente editada primero.
func (r *RestockNoteRepo) List(ctx context.Context) ([]*entity.RestockNote, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, note_name, note_date, created_at, updated_at
		FROM order_notes ORDER BY updated_at DESC, note_date DESC`)
	if err != nil {
		return nil, wrapErr("list order notes", err)
	}
	defer rows.Close()
	list := make([]*entity.RestockNote, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, wrapErr("scan order note", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list order notes", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *RestockNoteRepo) attachItems(ctx context.Context, notes []*entity.RestockNote) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(notes))
	byID := make(map[string]*entity.RestockNote, len(notes))
	for i, n := range notes {
		ids[i] = uuid.MustParse(n.ID)
		byID[n.ID] = n
		n.Items = make([]entity.RestockItem, 0)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, note_id, item_name, is_completed, created_at
		FROM order_note_items WHERE note_id = ANY($1)
		ORDER BY note_id, position`, ids)
	if err != nil {
		return wrapErr("list order note items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.RestockItem
		if err := rows.Scan(&it.ID, &it.NoteID, &it.ItemName, &it.IsCompleted, &it.CreatedAt); err != nil {
			return wrapErr("scan order note item", err)
		}
		if n, ok := byID[it.NoteID]; ok {
			n.Items = append(n.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapErr("list order note items", err)
	}
	return nil
}

// Delete borra la nota; los ítems caen por ON DELETE CASCADE.
func (r *RestockNoteRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM order_notes WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete order note", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetItemCompleted marca un solo ítem. domain.ErrNotFound si no existe.
func (r *RestockNoteRepo) SetItemCompleted(ctx context.Context, itemID string, completed bool) (*entity.RestockItem, error) {
	if !validID(itemID) {
		return nil, domain.ErrNotFound
	}
	var it entity.RestockItem
	err := r.q.QueryRow(ctx, `
		UPDATE order_note_items SET is_completed = $2
		WHERE id = $1
		RETURNING id, note_id, item_name, is_completed, created_at`,
		itemID, completed,
	).Scan(&it.ID, &it.NoteID, &it.ItemName, &it.IsCompleted, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("toggle order note item", err)
	}
	return &it, nil
}
