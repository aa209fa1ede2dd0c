package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/pos"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// SaleUseCase persistencia de ventas. Los montos se recalculan a partir de las líneas;
// los totales enviados por el cliente no se usan.
type SaleUseCase struct {
	repo repository.SaleRepository
	tx   TxRunner
	log  *logger.Logger
	now  func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository, tx TxRunner, log *logger.Logger) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{repo: repo, tx: tx, log: log, now: time.Now}
}

// List ventas filtradas por estado (vacío = todas).
func (uc *SaleUseCase) List(ctx context.Context, status string) ([]dto.SaleResponse, error) {
	if status != "" && !entity.ValidSaleStatus(status) {
		return nil, domain.NewValidationError(domain.RuleInvalidStatus, "estado inválido (draft | completed)")
	}
	list, err := uc.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSaleResponse(s))
	}
	return out, nil
}

// Get venta con sus líneas. (nil, nil) si no existe.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// Create guarda una venta nueva como borrador o completada.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.SaveSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.prepare("", in)
	if err != nil {
		return nil, err
	}
	sale.ID = uuid.New().String()
	sale.CreatedAt = uc.now()
	sale.UpdatedAt = sale.CreatedAt

	err = uc.tx.RunSale(ctx, func(sales repository.SaleRepository) error {
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		return sales.ReplaceItems(ctx, sale.ID, sale.Items)
	})
	if err != nil {
		return nil, err
	}
	uc.logSaved(sale)
	return ToSaleResponse(sale), nil
}

// Update vuelve a guardar un borrador con el mismo ID (cabecera + lista completa de líneas).
// Una venta completada ya no admite cambios: domain.ErrConflict.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.SaveSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.prepare(id, in)
	if err != nil {
		return nil, err
	}
	sale.UpdatedAt = uc.now()

	err = uc.tx.RunSale(ctx, func(sales repository.SaleRepository) error {
		status, err := sales.LockStatus(ctx, id)
		if err != nil {
			return err
		}
		switch status {
		case "":
			return domain.ErrNotFound
		case entity.SaleStatusCompleted:
			return domain.ErrConflict
		}
		// Sin fecha explícita se conserva la del borrador.
		if in.SaleDate == nil {
			cur, err := sales.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if cur != nil {
				sale.Date = cur.Date
			}
		}
		if err := sales.UpdateHeader(ctx, sale); err != nil {
			return err
		}
		return sales.ReplaceItems(ctx, sale.ID, sale.Items)
	})
	if err != nil {
		return nil, err
	}
	uc.logSaved(sale)
	return ToSaleResponse(sale), nil
}

// Delete elimina la venta y sus líneas.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// prepare reconstruye el carrito y aplica las reglas del estado destino.
func (uc *SaleUseCase) prepare(id string, in dto.SaveSaleRequest) (*entity.Sale, error) {
	status, err := requireStatus(in.Status)
	if err != nil {
		return nil, err
	}
	cart, err := buildCart(id, in.Items, in.Discount, in.PaymentType, in.CustomerName, in.AmountPaid)
	if err != nil {
		return nil, err
	}
	if in.SaleDate != nil {
		cart.Date = *in.SaleDate
	}
	return cart.ToSale(status, uc.now())
}

func (uc *SaleUseCase) logSaved(s *entity.Sale) {
	uc.log.Info().
		Str("sale_id", s.ID).
		Str("status", s.Status).
		Str("payment_type", s.PaymentType).
		Str("net_amount", s.NetAmount.StringFixed(2)).
		Int("items", len(s.Items)).
		Msg("venta guardada")
}

// LoadCart recarga un borrador como carrito editable con el mismo ID.
func (uc *SaleUseCase) LoadCart(ctx context.Context, id string) (*dto.CartResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.IsCompleted() {
		return nil, domain.ErrConflict
	}
	return toCartResponse(pos.FromSale(s)), nil
}
