// Package catalog contiene la importación masiva y la exportación del catálogo.
package catalog

import (
	"context"
	"io"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Formatos de exportación.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// TxRunner ejecuta fn con un repositorio de productos aislado: la lectura de nombres
// y la inserción ven el mismo estado y se confirman juntas.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// ImportRow fila decodificada. ParseErr indica valores no numéricos en columnas de precio.
type ImportRow struct {
	Line     int
	Product  *entity.Product
	ParseErr error
}

// SheetReader decodifica un archivo subido (el formato lo decide el nombre).
type SheetReader interface {
	ReadProducts(filename string, r io.Reader) ([]ImportRow, error)
}

// SheetWriter escribe el catálogo en el formato pedido.
type SheetWriter interface {
	WriteProducts(format string, w io.Writer, products []*entity.Product) error
}
