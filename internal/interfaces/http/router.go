package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/accounts"
	"github.com/powerkey/power-app/internal/application/auth"
	"github.com/powerkey/power-app/internal/application/buying"
	"github.com/powerkey/power-app/internal/application/printing"
	"github.com/powerkey/power-app/internal/application/selling"
	"github.com/powerkey/power-app/internal/application/stock"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC              *auth.AuthUseCase
	CompanyUC           *accounts.CompanyUseCase
	ExpenseTemplateUC   *accounts.ExpenseTemplateUseCase
	JournalEntryUC      *accounts.JournalEntryUseCase
	QuotationUC         *selling.QuotationUseCase
	SalesOrderUC        *selling.SalesOrderUseCase
	SupplierQuotationUC *buying.SupplierQuotationUseCase
	MaterialRequestUC   *buying.MaterialRequestUseCase
	ItemDetailsUC       *stock.ItemDetailsUseCase
	QuotationPDF        *printing.QuotationPDFUseCase
	JWTSecret           string
	Log                 *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RoleAdmin)
	sales := RequireRole(entity.RoleAdmin, entity.RoleVentas)
	purchasing := RequireRole(entity.RoleAdmin, entity.RoleCompras)
	anyone := RequireRole(entity.RoleAdmin, entity.RoleVentas, entity.RoleCompras)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies.Post("/", admin, companyHandler.Create)
	companies.Get("/:name", anyone, companyHandler.Get)
	companies.Put("/:name", admin, companyHandler.Update)

	// Users (roles más allá de ventas los asigna un admin)
	users := protected.Group("/users")
	users.Put("/:id/role", admin, authHandler.AssignRole)

	// Quotations
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.MaterialRequestUC, deps.QuotationPDF, log)
	quotations.Post("/", sales, quotationHandler.Create)
	quotations.Get("/:name", anyone, quotationHandler.Get)
	quotations.Put("/:name", sales, quotationHandler.Save)
	quotations.Post("/:name/approve", admin, quotationHandler.Approve)
	quotations.Post("/:name/submit", sales, quotationHandler.Submit)
	quotations.Get("/:name/supplier-quotation-items", anyone, quotationHandler.SupplierQuotationItems)
	quotations.Get("/:name/material-requests", anyone, quotationHandler.MaterialRequests)
	quotations.Post("/:name/supplier-items", sales, quotationHandler.AddSupplierItems)
	quotations.Post("/:name/make-material-request", anyone, quotationHandler.MakeMaterialRequest)
	quotations.Post("/:name/make-sales-order", sales, quotationHandler.MakeSalesOrder)
	quotations.Get("/:name/pdf", anyone, quotationHandler.PDF)

	// Supplier quotations
	supplierQuotations := protected.Group("/supplier-quotations")
	sqHandler := NewSupplierQuotationHandler(deps.SupplierQuotationUC, log)
	supplierQuotations.Post("/", purchasing, sqHandler.Save)
	supplierQuotations.Get("/:name", anyone, sqHandler.Get)
	supplierQuotations.Post("/:name/submit", purchasing, sqHandler.Submit)
	supplierQuotations.Get("/:name/linked-quotation", anyone, sqHandler.LinkedQuotation)
	supplierQuotations.Post("/:name/update-quotation", anyone, sqHandler.UpdateQuotation)

	// Material requests
	materialRequests := protected.Group("/material-requests")
	mrHandler := NewMaterialRequestHandler(deps.MaterialRequestUC, log)
	materialRequests.Post("/", anyone, mrHandler.Save)
	materialRequests.Get("/:name", anyone, mrHandler.Get)
	materialRequests.Post("/:name/submit", purchasing, mrHandler.Submit)

	// Sales orders
	salesOrders := protected.Group("/sales-orders")
	soHandler := NewSalesOrderHandler(deps.SalesOrderUC, log)
	salesOrders.Post("/", sales, soHandler.Create)
	salesOrders.Get("/:name", anyone, soHandler.Get)
	salesOrders.Put("/:name", sales, soHandler.Save)
	salesOrders.Post("/:name/submit", sales, soHandler.Submit)

	// Journal entries (solo lectura)
	journalEntries := protected.Group("/journal-entries")
	jeHandler := NewJournalEntryHandler(deps.JournalEntryUC, log)
	journalEntries.Get("/", anyone, jeHandler.List)
	journalEntries.Get("/:name", anyone, jeHandler.Get)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemDetailsUC, log)
	items.Get("/:code/details", anyone, itemHandler.Details)

	// Expense templates
	templates := protected.Group("/expense-templates")
	templateHandler := NewExpenseTemplateHandler(deps.ExpenseTemplateUC, log)
	templates.Post("/", purchasing, templateHandler.Save)
	templates.Get("/:name/expenses", anyone, templateHandler.Expenses)
}
