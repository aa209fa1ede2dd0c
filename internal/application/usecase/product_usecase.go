package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. El nombre es la clave de negocio.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List busca en nombre, código de barras y proveedores; search vacío = todo el catálogo.
func (uc *ProductUseCase) List(ctx context.Context, search string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Get obtiene un producto por nombre. (nil, nil) si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, name string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// Create valida y crea el producto. Un nombre existente devuelve domain.ErrDuplicate
// antes de intentar el insert.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, product.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update reemplaza la fila de oldName; permite renombrar si el nombre nuevo está libre.
func (uc *ProductUseCase) Update(ctx context.Context, oldName string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	if product.Name != oldName {
		existing, err := uc.repo.GetByName(ctx, product.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.UpdateByName(ctx, oldName, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina por nombre. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, name string) error {
	return uc.repo.DeleteByName(ctx, name)
}

func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError(domain.RuleRequiredField, "el nombre del producto es obligatorio")
	}
	if in.SalePrice.IsNegative() {
		return nil, domain.NewValidationError(domain.RuleInvalidPrice, "el precio de venta no puede ser negativo")
	}
	if err := domain.CheckMoney("precio de venta", in.SalePrice); err != nil {
		return nil, err
	}
	if len(in.Suppliers) > entity.MaxSuppliers {
		return nil, domain.NewValidationError(domain.RuleTooManySuppliers,
			fmt.Sprintf("máximo %d proveedores por producto", entity.MaxSuppliers))
	}
	p := &entity.Product{
		Name:      name,
		Barcode:   strings.TrimSpace(in.Barcode),
		SalePrice: in.SalePrice,
	}
	for i, s := range in.Suppliers {
		if s.Price.IsNegative() {
			return nil, domain.NewValidationError(domain.RuleInvalidPrice,
				fmt.Sprintf("el precio del proveedor %d no puede ser negativo", i+1))
		}
		if err := domain.CheckMoney(fmt.Sprintf("precio del proveedor %d", i+1), s.Price); err != nil {
			return nil, err
		}
		p.Suppliers[i] = entity.SupplierPrice{Name: strings.TrimSpace(s.Name), Price: s.Price}
	}
	return p, nil
}

// ToProductResponse incluye siempre los 4 pares y el mejor precio derivado.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	suppliers := make([]dto.SupplierPriceDTO, len(p.Suppliers))
	for i, s := range p.Suppliers {
		suppliers[i] = dto.SupplierPriceDTO{Name: s.Name, Price: s.Price}
	}
	resp := &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Barcode:   p.Barcode,
		SalePrice: p.SalePrice,
		Suppliers: suppliers,
		BestPrice: p.BestPrice(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if best, ok := p.BestOffer(); ok {
		resp.BestSupplier = best.Name
	}
	return resp
}
