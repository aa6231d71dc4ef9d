package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/bulkimport"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	UserUC       *usecase.UserUseCase
	LedgerUC     *ledger.UseCase
	BulkImportUC *bulkimport.UseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido; mutaciones solo ADMIN)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.BulkImportUC)
	products.Post("/add", adminOnly, productHandler.Create)
	products.Put("/update", adminOnly, productHandler.Update)
	products.Get("/all", productHandler.List)
	products.Get("/summary", productHandler.Summary)
	products.Post("/bulk-excel", productHandler.BulkImport)
	products.Delete("/delete/:id", adminOnly, productHandler.Delete)
	products.Get("/:id", productHandler.GetByID)

	// Categories (protegido; mutaciones solo ADMIN)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/add", adminOnly, categoryHandler.Create)
	categories.Get("/all", categoryHandler.List)
	categories.Put("/update/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/delete/:id", adminOnly, categoryHandler.Delete)
	categories.Get("/:id", categoryHandler.GetByID)

	// Suppliers (protegido; mutaciones solo ADMIN)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/add", adminOnly, supplierHandler.Create)
	suppliers.Get("/all", supplierHandler.List)
	suppliers.Put("/update/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/delete/:id", adminOnly, supplierHandler.Delete)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Users (protegido; listar y mutar solo ADMIN)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users.Get("/all", adminOnly, userHandler.List)
	users.Get("/current", userHandler.Current)
	users.Get("/:id/transactions", userHandler.Transactions)
	users.Put("/update/:id", adminOnly, userHandler.Update)
	users.Delete("/delete/:id", adminOnly, userHandler.Delete)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.LedgerUC)
	transactions.Post("/purchase", transactionHandler.Purchase)
	transactions.Post("/sell", transactionHandler.Sell)
	transactions.Post("/return", transactionHandler.ReturnToSupplier)
	transactions.Post("/return-sale/:saleId", transactionHandler.ReturnSale)
	transactions.Get("/all", transactionHandler.Search)
	transactions.Get("/by-month-year", transactionHandler.ByMonthAndYear)
	transactions.Put("/update/:id", transactionHandler.UpdateStatus)
	transactions.Get("/:id", transactionHandler.GetByID)
}
