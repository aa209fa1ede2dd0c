// import_csv carga un catálogo de productos desde CSV o XLSX sin pasar por la API.
//
// Uso:
//
//	go run ./cmd/import_csv -file productos.csv
//	go run ./cmd/import_csv -file productos.csv -encoding windows-874
//	go run ./cmd/import_csv -export catalogo.xlsx
//
// El destino es el configurado en CATALOG_STORE (postgres o csv).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/csvstore"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	file := pflag.StringP("file", "f", "", "archivo CSV o XLSX a importar")
	encoding := pflag.String("encoding", "utf-8", "codificación del CSV: utf-8 | windows-874 | iso-8859-1")
	export := pflag.StringP("export", "o", "", "exportar el catálogo a este archivo (.csv o .xlsx)")
	pflag.Parse()

	if *file == "" && *export == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	products, tx, closeFn, err := openCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer closeFn()

	codec := spreadsheet.Codec{}
	uc := catalog.NewImportUseCase(products, tx, codec, codec, log.Component("import_csv"))

	if *file != "" {
		if err := runImport(ctx, uc, *file, *encoding, log); err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("importación fallida")
		}
	}
	if *export != "" {
		if err := runExport(ctx, uc, *export); err != nil {
			log.Fatal().Err(err).Str("file", *export).Msg("exportación fallida")
		}
		log.Info().Str("file", *export).Msg("catálogo exportado")
	}
}

// openCatalog elige el backend del catálogo igual que la API.
func openCatalog(ctx context.Context, cfg *config.Config) (repository.ProductRepository, catalog.TxRunner, func(), error) {
	if cfg.Catalog.Store == config.CatalogStoreCSV {
		store := csvstore.NewProductStore(cfg.Catalog.CSVPath)
		return store, store, func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
	}
	return postgres.NewProductRepository(pool), postgres.NewTxRunner(pool), pool.Close, nil
}

func runImport(ctx context.Context, uc *catalog.ImportUseCase, path, encoding string, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		r, err = decodeReader(f, encoding)
		if err != nil {
			return err
		}
	}

	res, err := uc.Import(ctx, filepath.Base(path), r)
	if err != nil {
		return err
	}
	log.Info().
		Int("added", res.Added).
		Int("duplicates", res.Duplicates).
		Strs("duplicate_names", res.DuplicateNames).
		Int("total", res.Total).
		Msg("importación completada")
	return nil
}

// decodeReader convierte CSV exportados por Excel en Windows (TIS-620 / Latin-1) a UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-874", "tis-620", "cp874":
		return transform.NewReader(r, charmap.Windows874.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

func runExport(ctx context.Context, uc *catalog.ImportUseCase, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := uc.Export(ctx, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
