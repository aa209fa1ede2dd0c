package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// RestockNoteRepository define el puerto de persistencia para notas de pedido y sus ítems.
type RestockNoteRepository interface {
	Create(ctx context.Context, note *entity.RestockNote) error
	UpdateHeader(ctx context.Context, note *entity.RestockNote) error
	// ReplaceItems borra los ítems de la nota e inserta la lista nueva con IDs nuevos.
	ReplaceItems(ctx context.Context, noteID string, items []entity.RestockItem) ([]entity.RestockItem, error)
	GetByID(ctx context.Context, id string) (*entity.RestockNote, error)
	List(ctx context.Context) ([]*entity.RestockNote, error)
	// Delete borra la nota; sus ítems caen en cascada.
	Delete(ctx context.Context, id string) error
	// SetItemCompleted actualiza un solo ítem sin tocar sus hermanos.
	SetItemCompleted(ctx context.Context, itemID string, completed bool) (*entity.RestockItem, error)
}
