package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

const noteDateLayout = "2006-01-02"

// RestockTxRunner ejecuta fn con un repositorio atado a una transacción.
type RestockTxRunner interface {
	RunRestock(ctx context.Context, fn func(notes repository.RestockNoteRepository) error) error
}

// RestockNoteUseCase notas de pedido a proveedores. La nota y sus ítems se escriben
// juntos: si falla la lista de ítems, la cabecera tampoco queda.
type RestockNoteUseCase struct {
	repo repository.RestockNoteRepository
	tx   RestockTxRunner
	loc  *time.Location
}

// NewRestockNoteUseCase construye el caso de uso. loc define el "hoy" de las notas sin fecha.
func NewRestockNoteUseCase(repo repository.RestockNoteRepository, tx RestockTxRunner, loc *time.Location) *RestockNoteUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &RestockNoteUseCase{repo: repo, tx: tx, loc: loc}
}

// List todas las notas con sus ítems.
func (uc *RestockNoteUseCase) List(ctx context.Context) ([]dto.RestockNoteResponse, error) {
	notes, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestockNoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toRestockNoteResponse(n))
	}
	return out, nil
}

// Create crea la nota y sus ítems en una transacción.
func (uc *RestockNoteUseCase) Create(ctx context.Context, in dto.RestockNoteRequest) (*dto.RestockNoteResponse, error) {
	note, err := uc.noteFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	note.ID = uuid.New().String()
	note.CreatedAt, note.UpdatedAt = now, now

	err = uc.tx.RunRestock(ctx, func(notes repository.RestockNoteRepository) error {
		if err := notes.Create(ctx, note); err != nil {
			return err
		}
		items, err := notes.ReplaceItems(ctx, note.ID, note.Items)
		note.Items = items
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toRestockNoteResponse(note)
	return &resp, nil
}

// Update reemplaza cabecera y lista completa de ítems (los IDs anteriores se descartan).
func (uc *RestockNoteUseCase) Update(ctx context.Context, id string, in dto.RestockNoteRequest) (*dto.RestockNoteResponse, error) {
	note, err := uc.noteFromRequest(in)
	if err != nil {
		return nil, err
	}
	note.ID = id
	note.UpdatedAt = time.Now()

	err = uc.tx.RunRestock(ctx, func(notes repository.RestockNoteRepository) error {
		if err := notes.UpdateHeader(ctx, note); err != nil {
			return err
		}
		items, err := notes.ReplaceItems(ctx, note.ID, note.Items)
		note.Items = items
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toRestockNoteResponse(note)
	return &resp, nil
}

// Delete elimina la nota con todos sus ítems.
func (uc *RestockNoteUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToggleItem marca un solo ítem sin tocar los demás de la nota.
func (uc *RestockNoteUseCase) ToggleItem(ctx context.Context, itemID string, completed bool) (*dto.RestockItemResponse, error) {
	item, err := uc.repo.SetItemCompleted(ctx, itemID, completed)
	if err != nil {
		return nil, err
	}
	resp := toRestockItemResponse(*item)
	return &resp, nil
}

func (uc *RestockNoteUseCase) noteFromRequest(in dto.RestockNoteRequest) (*entity.RestockNote, error) {
	name := strings.TrimSpace(in.NoteName)
	if name == "" {
		return nil, domain.NewValidationError(domain.RuleRequiredField, "el nombre de la nota es obligatorio")
	}
	date := time.Now().In(uc.loc)
	if d := strings.TrimSpace(in.NoteDate); d != "" {
		parsed, err := time.ParseInLocation(noteDateLayout, d, uc.loc)
		if err != nil {
			return nil, domain.NewValidationError(domain.RuleInvalidDate, "fecha inválida, use AAAA-MM-DD")
		}
		date = parsed
	}
	note := &entity.RestockNote{
		Name:  name,
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, uc.loc),
		Items: make([]entity.RestockItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		itemName := strings.TrimSpace(it.ItemName)
		if itemName == "" {
			continue
		}
		note.Items = append(note.Items, entity.RestockItem{ItemName: itemName, IsCompleted: it.IsCompleted})
	}
	return note, nil
}

func toRestockItemResponse(it entity.RestockItem) dto.RestockItemResponse {
	return dto.RestockItemResponse{
		ID:          it.ID,
		NoteID:      it.NoteID,
		ItemName:    it.ItemName,
		IsCompleted: it.IsCompleted,
		CreatedAt:   it.CreatedAt,
	}
}

func toRestockNoteResponse(n *entity.RestockNote) dto.RestockNoteResponse {
	items := make([]dto.RestockItemResponse, 0, len(n.Items))
	for _, it := range n.Items {
		items = append(items, toRestockItemResponse(it))
	}
	return dto.RestockNoteResponse{
		ID:        n.ID,
		NoteName:  n.Name,
		NoteDate:  n.Date.Format(noteDateLayout),
		Items:     items,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
