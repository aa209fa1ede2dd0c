package http

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	sheets *catalog.ImportUseCase
	errs   errorWriter
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, sheets *catalog.ImportUseCase, errs errorWriter) *ProductHandler {
	return &ProductHandler{uc: uc, sheets: sheets, errs: errs}
}

// nameParam el nombre del producto llega codificado en la ruta.
func nameParam(c *fiber.Ctx) string {
	raw := c.Params("name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        search  query  string  false  "Texto a buscar en nombre, código de barras o proveedor"
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener producto por nombre
// @Tags         products
// @Produce      json
// @Param        name  path  string  true  "Nombre del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{name} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), nameParam(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
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
// @Summary      Reemplazar producto (permite renombrar)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string              true  "Nombre actual"
// @Param        body  body  dto.ProductRequest  true  "Datos nuevos"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{name} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), nameParam(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del producto"
// @Success      200   {object}  dto.DeleteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{name} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), nameParam(c)); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(dto.DeleteResponse{Success: true})
}

// Upload godoc
// @Summary      Carga masiva desde CSV o XLSX
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .csv o .xlsx"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/upload [post]
func (h *ProductHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Rule: domain.RuleInvalidFile, Message: "adjunte el archivo en el campo file"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.errs.write(c, err)
	}
	defer f.Close()

	out, err := h.sheets.Import(c.UserContext(), fh.Filename, f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar catálogo
// @Tags         products
// @Produce      octet-stream
// @Param        format  query  string  false  "csv (defecto) | xlsx"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/export [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", catalog.FormatCSV))
	var buf bytes.Buffer
	if err := h.sheets.Export(c.UserContext(), format, &buf); err != nil {
		return h.errs.write(c, err)
	}
	contentType := "text/csv; charset=utf-8"
	if format == catalog.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="products.%s"`, format))
	return c.Send(buf.Bytes())
}
