package sales

import (
	"context"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CartUseCase operaciones del carrito sin estado en el servidor: cada llamada recibe
// el carrito completo y devuelve el carrito nuevo con totales y reglas pendientes.
type CartUseCase struct {
	products repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{products: products}
}

// AddItem busca el producto por nombre y lo agrega con su precio de venta actual.
func (uc *CartUseCase) AddItem(ctx context.Context, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	cart, err := cartFromDTO(in.Cart)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.NewValidationError(domain.RuleNoProduct, "seleccione un producto")
	}
	product, err := uc.products.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewValidationError(domain.RuleNoProduct, "el producto no existe en el catálogo")
	}
	if err := cart.AddItem(product, in.Quantity); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// UpdateItem fija la cantidad de la línea index; <= 0 la quita.
func (uc *CartUseCase) UpdateItem(index int, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	cart, err := cartFromDTO(in.Cart)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateQuantity(index, in.Quantity); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// RemoveItem quita la línea index.
func (uc *CartUseCase) RemoveItem(index int, in dto.CartDTO) (*dto.CartResponse, error) {
	cart, err := cartFromDTO(in)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(index); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// SetDiscount fija el descuento; si supera el total queda como impedimento para completar.
func (uc *CartUseCase) SetDiscount(in dto.CartDiscountRequest) (*dto.CartResponse, error) {
	cart, err := cartFromDTO(in.Cart)
	if err != nil {
		return nil, err
	}
	if err := cart.SetDiscount(in.Discount); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Validate recalcula totales y lista las reglas que impiden completar.
func (uc *CartUseCase) Validate(in dto.CartDTO) (*dto.CartResponse, error) {
	cart, err := cartFromDTO(in)
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}
