package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// RestockHandler notas de pedido a proveedores.
type RestockHandler struct {
	uc   *usecase.RestockNoteUseCase
	errs errorWriter
}

// NewRestockHandler construye el handler.
func NewRestockHandler(uc *usecase.RestockNoteUseCase, errs errorWriter) *RestockHandler {
	return &RestockHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar notas de pedido con sus ítems
// @Tags         restock-notes
// @Produce      json
// @Success      200  {array}  dto.RestockNoteResponse
// @Router       /api/restock-notes [get]
func (h *RestockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear nota de pedido
// @Tags         restock-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockNoteRequest  true  "Nota e ítems"
// @Success      201   {object}  dto.RestockNoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restock-notes [post]
func (h *RestockHandler) Create(c *fiber.Ctx) error {
	var in dto.RestockNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar nota e ítems
// @Tags         restock-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la nota"
// @Param        body  body  dto.RestockNoteRequest  true  "Nota e ítems"
// @Success      200   {object}  dto.RestockNoteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restock-notes/{id} [put]
func (h *RestockHandler) Update(c *fiber.Ctx) error {
	var in dto.RestockNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota (y sus ítems)
// @Tags         restock-notes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la nota"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restock-notes/{id} [delete]
func (h *RestockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.DeleteResponse{Success: true})
}

// ToggleItem godoc
// @Summary      Marcar o desmarcar un ítem
// @Tags         restock-notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.ToggleItemRequest  true  "Estado"
// @Success      200   {object}  dto.RestockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restock-notes/items/{id} [put]
func (h *RestockHandler) ToggleItem(c *fiber.Ctx) error {
	var in dto.ToggleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ToggleItem(c.UserContext(), c.Params("id"), in.IsCompleted)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
