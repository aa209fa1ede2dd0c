package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV lee un CSV con encabezado. Acepta UTF-8 con o sin BOM; si el contenido
// no es UTF-8 válido se asume Windows-874 (Excel en tailandés).
func ReadCSV(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.Windows874.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv inválido: %w", err)
	}
	return toRecords(rows)
}

// WriteCSV exporta el catálogo: BOM UTF-8, encabezado fijo de 10 columnas y
// comillas RFC 4180 donde haga falta.
func WriteCSV(w io.Writer, products []*entity.Product) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("escribir BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader()); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(exportRow(p)); err != nil {
			return fmt.Errorf("escribir %q: %w", p.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRows escribe un CSV sin BOM con encabezado arbitrario (archivo de catálogo).
func WriteRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("escribir filas: %w", err)
	}
	return nil
}
