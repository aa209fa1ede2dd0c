package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tienda-api/docs"
	appanalytics "github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/csvstore"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/receipt"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("catalog", cfg.Catalog.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Strs("scripts", applied).Msg("esquema aplicado")
	}

	loc := cfg.App.Location()
	txRunner := postgres.NewTxRunner(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	restockRepo := postgres.NewRestockNoteRepository(pool)

	// Catálogo: tabla products o archivo CSV plano (CATALOG_STORE=csv).
	var (
		productRepo repository.ProductRepository
		catalogTx   catalog.TxRunner
	)
	switch cfg.Catalog.Store {
	case config.CatalogStoreCSV:
		store := csvstore.NewProductStore(cfg.Catalog.CSVPath)
		productRepo, catalogTx = store, store
		log.Info().Str("path", cfg.Catalog.CSVPath).Msg("catálogo en archivo CSV")
	default:
		productRepo, catalogTx = postgres.NewProductRepository(pool), txRunner
	}

	codec := spreadsheet.Codec{}
	productUC := usecase.NewProductUseCase(productRepo)
	catalogIO := catalog.NewImportUseCase(productRepo, catalogTx, codec, codec, log.Component("catalog"))
	contactUC := usecase.NewContactUseCase(contactRepo)
	restockUC := usecase.NewRestockNoteUseCase(restockRepo, txRunner, loc)
	saleUC := sales.NewSaleUseCase(saleRepo, txRunner, log.Component("sales"))
	cartUC := sales.NewCartUseCase(productRepo)
	receiptUC := sales.NewReceiptUseCase(
		saleRepo, receipt.NewHTMLRenderer(), infrapdf.NewMarotoReceiptGenerator(),
		sales.ShopInfo{
			Name:           cfg.Shop.Name,
			Phone:          cfg.Shop.Phone,
			CurrencySymbol: cfg.Shop.CurrencySymbol,
		},
		loc,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(saleRepo, productRepo, contactRepo, loc)

	var (
		authUC    *auth.AuthUseCase
		jwtSecret string
	)
	if cfg.JWT.Enabled() {
		authUC = auth.NewAuthUseCase(auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
			PINHash:    cfg.JWT.AdminPINHash,
		})
		jwtSecret = cfg.JWT.Secret
	} else {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	app.Use(httpRouter.Timeout(cfg.HTTP.RequestTimeout))
	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CatalogIO:   catalogIO,
		ContactUC:   contactUC,
		RestockUC:   restockUC,
		SaleUC:      saleUC,
		CartUC:      cartUC,
		ReceiptUC:   receiptUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   jwtSecret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
