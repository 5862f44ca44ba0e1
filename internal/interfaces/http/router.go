package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/auth"
	"github.com/seu-usuario/lanchonete-pro/internal/application/expenses"
	"github.com/seu-usuario/lanchonete-pro/internal/application/ledger"
	"github.com/seu-usuario/lanchonete-pro/internal/application/meals"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sales"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sync"
	"github.com/seu-usuario/lanchonete-pro/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *ledger.MovementUseCase
	SaleUC     *sales.SaleUseCase
	MealUC     *meals.MealUseCase
	ExpenseUC  *expenses.ExpenseUseCase
	SyncUC     *sync.ProductSyncUseCase
	AuthUC     *auth.AuthUseCase
	Session    *session.Session
	JWTSecret  string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/users", RequireAdmin(), authHandler.CreateUser)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Products + estoque derivado
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC, deps.Session)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/stock", productHandler.Stock)
	products.Get("/:id/movements", productHandler.Movements)

	// Razão de movimentos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Session)
	movements.Post("/", movementHandler.Register)
	movements.Post("/adjustment", movementHandler.RegisterAdjustment)

	// Vendas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Session)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)

	// Refeições de funcionário
	mealsGroup := protected.Group("/meals")
	mealHandler := NewMealHandler(deps.MealUC, deps.Session)
	mealsGroup.Post("/", mealHandler.Record)
	mealsGroup.Get("/balance", mealHandler.Balance)
	mealsGroup.Post("/:id/cancel", mealHandler.Cancel)

	// Despesas
	expensesGroup := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.Session)
	expensesGroup.Post("/", expenseHandler.Record)
	expensesGroup.Get("/summary", expenseHandler.Summary)
	expensesGroup.Post("/:id/cancel", expenseHandler.Cancel)

	// Reconciliação (admin)
	syncHandler := NewSyncHandler(deps.SyncUC, deps.Session)
	protected.Post("/sync/products", RequireAdmin(), syncHandler.Run)

	// Sessão: recarga e leituras de cache
	sessionHandler := NewSessionHandler(deps.Session)
	protected.Post("/session/refresh", sessionHandler.Refresh)
	protected.Get("/session/stock/:id", sessionHandler.CachedStock)
}
