package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/seu-usuario/lanchonete-pro/internal/application/auth"
	"github.com/seu-usuario/lanchonete-pro/internal/application/expenses"
	"github.com/seu-usuario/lanchonete-pro/internal/application/ledger"
	"github.com/seu-usuario/lanchonete-pro/internal/application/meals"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sales"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sync"
	"github.com/seu-usuario/lanchonete-pro/internal/application/usecase"
	"github.com/seu-usuario/lanchonete-pro/internal/infrastructure/postgres"
	httpRouter "github.com/seu-usuario/lanchonete-pro/internal/interfaces/http"
	"github.com/seu-usuario/lanchonete-pro/pkg/config"
	"github.com/seu-usuario/lanchonete-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	mealRepo := postgres.NewMealRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	movementUC := ledger.NewMovementUseCase(movementRepo, productRepo)
	saleUC := sales.NewSaleUseCase(txRunner, productRepo, employeeRepo, saleRepo)
	mealUC := meals.NewMealUseCase(mealRepo, employeeRepo)
	expenseUC := expenses.NewExpenseUseCase(expenseRepo)
	syncUC := sync.NewProductSyncUseCase(productRepo, log.Zerolog())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	sess := session.New(session.Repos{
		Products:  productRepo,
		Movements: movementRepo,
		Sales:     saleRepo,
		Expenses:  expenseRepo,
		Employees: employeeRepo,
		Meals:     mealRepo,
	}, log.Zerolog())
	if err := sess.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("carga inicial da sessão incompleta")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lanchonete Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		MovementUC: movementUC,
		SaleUC:     saleUC,
		MealUC:     mealUC,
		ExpenseUC:  expenseUC,
		SyncUC:     syncUC,
		AuthUC:     authUC,
		Session:    sess,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
