package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ImportUseCase carga masiva y exportación del catálogo.
type ImportUseCase struct {
	repo   repository.ProductRepository
	tx     TxRunner
	reader SheetReader
	writer SheetWriter
	log    *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(repo repository.ProductRepository, tx TxRunner, reader SheetReader, writer SheetWriter, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{repo: repo, tx: tx, reader: reader, writer: writer, log: log}
}

// Import valida el archivo completo antes de tocar el catálogo:
//   - una fila sin ProductName rechaza todo el archivo (se informa cuántas y cuáles);
//   - un precio no numérico o negativo también rechaza todo.
//
// Luego separa filas nuevas de duplicadas (contra el catálogo y contra filas anteriores
// del mismo archivo) e inserta sólo las nuevas.
func (uc *ImportUseCase) Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResult, error) {
	rows, err := uc.reader.ReadProducts(filename, r)
	if err != nil {
		return nil, domain.NewValidationError(domain.RuleInvalidFile, err.Error())
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError(domain.RuleInvalidFile, "el archivo no tiene filas de datos")
	}
	if err := validateRows(rows); err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Success: true, Total: len(rows), DuplicateNames: make([]string, 0)}
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository) error {
		seen, err := products.Names(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		fresh := make([]*entity.Product, 0, len(rows))
		for _, row := range rows {
			p := row.Product
			if _, dup := seen[p.Name]; dup {
				result.DuplicateNames = append(result.DuplicateNames, p.Name)
				continue
			}
			seen[p.Name] = struct{}{}
			p.ID = ""
			p.CreatedAt, p.UpdatedAt = now, now
			fresh = append(fresh, p)
		}
		added, err := products.BulkCreate(ctx, fresh)
		result.Added = added
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Duplicates = len(result.DuplicateNames)
	uc.log.Info().
		Str("file", filename).
		Int("total", result.Total).
		Int("added", result.Added).
		Int("duplicates", result.Duplicates).
		Msg("importación de catálogo")
	return result, nil
}

func validateRows(rows []ImportRow) error {
	var missing, badPrice []int
	var firstPriceErr string
	for _, row := range rows {
		row.Product.Name = strings.TrimSpace(row.Product.Name)
		if row.Product.Name == "" {
			missing = append(missing, row.Line)
			continue
		}
		if row.ParseErr != nil || hasInvalidPrice(row.Product) {
			if firstPriceErr == "" {
				if row.ParseErr != nil {
					firstPriceErr = row.ParseErr.Error()
				} else {
					firstPriceErr = fmt.Sprintf("fila %d: precio negativo o con más de %d decimales", row.Line, domain.MoneyPlaces)
				}
			}
			badPrice = append(badPrice, row.Line)
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{
			Rule:    domain.RuleMissingProductName,
			Message: fmt.Sprintf("%d filas sin ProductName", len(missing)),
			Details: dto.InvalidRowsDetails{Count: len(missing), Lines: missing},
		}
	}
	if len(badPrice) > 0 {
		return &domain.ValidationError{
			Rule:    domain.RuleInvalidPrice,
			Message: fmt.Sprintf("%d filas con precios inválidos (%s)", len(badPrice), firstPriceErr),
			Details: dto.InvalidRowsDetails{Count: len(badPrice), Lines: badPrice},
		}
	}
	return nil
}

func hasInvalidPrice(p *entity.Product) bool {
	if p.SalePrice.IsNegative() || !domain.ValidMoney(p.SalePrice) {
		return true
	}
	for _, s := range p.Suppliers {
		if s.Price.IsNegative() || !domain.ValidMoney(s.Price) {
			return true
		}
	}
	return false
}

// Export escribe todo el catálogo en format (csv | xlsx).
func (uc *ImportUseCase) Export(ctx context.Context, format string, w io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return domain.NewValidationError(domain.RuleInvalidFile, "formato inválido (csv | xlsx)")
	}
	list, err := uc.repo.List(ctx, "")
	if err != nil {
		return err
	}
	return uc.writer.WriteProducts(format, w, list)
}
