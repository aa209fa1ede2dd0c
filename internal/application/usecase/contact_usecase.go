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

// ContactUseCase directorio de proveedores y vendedores.
type ContactUseCase struct {
	repo repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// List busca por subcadena en nombre, teléfono e id de LINE.
func (uc *ContactUseCase) List(ctx context.Context, search string) ([]dto.ContactResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContactResponse(c))
	}
	return out, nil
}

// Create crea un contacto; sólo el nombre es obligatorio.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.ContactRequest) (*dto.ContactResponse, error) {
	c, err := contactFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c.ID = uuid.New().String()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toContactResponse(c)
	return &resp, nil
}

// Update reemplaza los campos del contacto. domain.ErrNotFound si no existe.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	c, err := contactFromRequest(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toContactResponse(c)
	return &resp, nil
}

// Delete elimina un contacto. domain.ErrNotFound si no existe.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func contactFromRequest(in dto.ContactRequest) (*entity.Contact, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.RuleRequiredField, "el nombre del contacto es obligatorio")
	}
	return &entity.Contact{
		Name:        name,
		Phone:       strings.TrimSpace(in.Phone),
		MessagingID: strings.TrimSpace(in.LineID),
		Note:        strings.TrimSpace(in.Note),
	}, nil
}

func toContactResponse(c *entity.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		LineID:    c.MessagingID,
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
