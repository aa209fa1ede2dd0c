package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CatalogIO   *catalog.ImportUseCase
	ContactUC   *usecase.ContactUseCase
	RestockUC   *usecase.RestockNoteUseCase
	SaleUC      *sales.SaleUseCase
	CartUC      *sales.CartUseCase
	ReceiptUC   *sales.ReceiptUseCase
	DashboardUC *appanalytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase // nil = sin login
	JWTSecret   string            // vacío = rutas de escritura abiertas
	Log         *logger.Logger
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras exigen
// Bearer Token sólo si hay secreto JWT configurado.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	errs := errorWriter{log: log.Component("http")}

	// secured antepone JWT + rol admin a los handlers de escritura.
	secured := func(h fiber.Handler) []fiber.Handler {
		if deps.JWTSecret == "" {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin), h}
	}

	api := app.Group("/api")

	// Auth (público)
	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC, errs)
		api.Post("/auth/login", authHandler.Login)
	}

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CatalogIO, errs)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.Export)
	products.Post("/upload", secured(productHandler.Upload)...)
	products.Post("/", secured(productHandler.Create)...)
	products.Get("/:name", productHandler.Get)
	products.Put("/:name", secured(productHandler.Update)...)
	products.Delete("/:name", secured(productHandler.Delete)...)

	// Contacts
	contacts := api.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC, errs)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", secured(contactHandler.Create)...)
	contacts.Put("/:id", secured(contactHandler.Update)...)
	contacts.Delete("/:id", secured(contactHandler.Delete)...)

	// Restock notes
	notes := api.Group("/restock-notes")
	restockHandler := NewRestockHandler(deps.RestockUC, errs)
	notes.Get("/", restockHandler.List)
	notes.Post("/", secured(restockHandler.Create)...)
	notes.Put("/items/:id", secured(restockHandler.ToggleItem)...)
	notes.Put("/:id", secured(restockHandler.Update)...)
	notes.Delete("/:id", secured(restockHandler.Delete)...)

	// Sales + recibos
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC, errs)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", secured(saleHandler.Create)...)
	salesGroup.Get("/:id/receipt.pdf", saleHandler.ReceiptPDF)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id/cart", saleHandler.LoadCart)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Put("/:id", secured(saleHandler.Update)...)
	salesGroup.Delete("/:id", secured(saleHandler.Delete)...)

	// POS: carrito sin estado en el servidor
	cart := api.Group("/pos/cart")
	posHandler := NewPOSHandler(deps.CartUC, errs)
	cart.Post("/items", posHandler.AddItem)
	cart.Put("/items/:index", posHandler.UpdateItem)
	cart.Post("/items/:index/remove", posHandler.RemoveItem)
	cart.Post("/discount", posHandler.SetDiscount)
	cart.Post("/validate", posHandler.Validate)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
}
