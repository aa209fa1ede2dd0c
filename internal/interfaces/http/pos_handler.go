package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
)

// POSHandler operaciones del carrito. El carrito viaja completo en cada petición y la
// respuesta trae el estado nuevo con totales recalculados.
type POSHandler struct {
	uc   *sales.CartUseCase
	errs errorWriter
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *sales.CartUseCase, errs errorWriter) *POSHandler {
	return &POSHandler{uc: uc, errs: errs}
}

// indexParam índice de línea en la ruta; -1 si no es numérico.
func indexParam(c *fiber.Ctx) int {
	i, err := c.ParamsInt("index", -1)
	if err != nil {
		return -1
	}
	return i
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "Carrito + producto + cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddItem(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea (0 la quita)
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        index  path  int                        true  "Índice de la línea"
// @Param        body   body  dto.UpdateCartItemRequest  true  "Carrito + cantidad"
// @Success      200    {object}  dto.CartResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items/{index} [put]
func (h *POSHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItem(indexParam(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea del carrito
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        index  path  int          true  "Índice de la línea"
// @Param        body   body  dto.CartDTO  true  "Carrito"
// @Success      200    {object}  dto.CartResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items/{index}/remove [post]
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	var in dto.CartDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RemoveItem(indexParam(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// SetDiscount godoc
// @Summary      Fijar descuento
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartDiscountRequest  true  "Carrito + descuento"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/discount [post]
func (h *POSHandler) SetDiscount(c *fiber.Ctx) error {
	var in dto.CartDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetDiscount(in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Recalcular totales y reglas pendientes
// @Tags         pos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartDTO  true  "Carrito"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/validate [post]
func (h *POSHandler) Validate(c *fiber.Ctx) error {
	var in dto.CartDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Validate(in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
