package spreadsheet

import (
	"fmt"
	"io"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

var (
	_ catalog.SheetReader = Codec{}
	_ catalog.SheetWriter = Codec{}
)

// Codec adapta el paquete a los puertos de importación y exportación del catálogo.
type Codec struct{}

// ReadProducts decodifica el archivo y convierte cada fila en producto.
func (Codec) ReadProducts(filename string, r io.Reader) ([]catalog.ImportRow, error) {
	recs, err := Read(filename, r)
	if err != nil {
		return nil, err
	}
	rows := make([]catalog.ImportRow, len(recs))
	for i, rec := range recs {
		p, err := rec.ToProduct()
		rows[i] = catalog.ImportRow{Line: rec.Line, Product: p, ParseErr: err}
	}
	return rows, nil
}

// WriteProducts csv o xlsx.
func (Codec) WriteProducts(format string, w io.Writer, products []*entity.Product) error {
	switch format {
	case catalog.FormatCSV:
		return WriteCSV(w, products)
	case catalog.FormatXLSX:
		return WriteXLSX(w, products)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
