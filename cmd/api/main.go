package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/powerkey/power-app/internal/application/accounts"
	"github.com/powerkey/power-app/internal/application/auth"
	"github.com/powerkey/power-app/internal/application/buying"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/application/printing"
	"github.com/powerkey/power-app/internal/application/selling"
	"github.com/powerkey/power-app/internal/application/stock"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/internal/infrastructure/cache"
	"github.com/powerkey/power-app/internal/infrastructure/memory"
	infrapdf "github.com/powerkey/power-app/internal/infrastructure/pdf"
	"github.com/powerkey/power-app/internal/infrastructure/postgres"
	httpRouter "github.com/powerkey/power-app/internal/interfaces/http"
	"github.com/powerkey/power-app/pkg/config"
	"github.com/powerkey/power-app/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner lifecycle.TxRunner
		repos    repository.Set
		userRepo repository.UserRepository
	)
	switch cfg.App.StorageDriver {
	case config.StorageMemory:
		// Sin persistencia: útil para demos y pruebas manuales.
		store := memory.NewStore()
		txRunner, repos, userRepo = store, store.Repos(), store.Users()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos, userRepo = postgres.NewTxRunner(pool), postgres.Repos(pool), postgres.NewUserRepository(pool)
	}

	registry := lifecycle.NewRegistry()
	selling.RegisterHooks(registry)
	engine := lifecycle.NewEngine(registry, txRunner, log)

	// Cache de detalle de artículos: solo si REDIS_ADDR está definido.
	var detailsCache stock.DetailsCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		detailsCache = cache.NewItemDetailsCache(client, cfg.Redis.ItemCacheTTL)
	}

	companyUC := accounts.NewCompanyUseCase(repos.Companies)
	if b := cfg.Bootstrap; b.Company != "" {
		abbr := b.Abbr
		if abbr == "" {
			r := []rune(b.Company)
			abbr = strings.ToUpper(string(r[:min(len(r), 3)]))
		}
		_, created, err := companyUC.Ensure(ctx, dto.CreateCompanyRequest{
			Name:                         b.Company,
			Abbr:                         abbr,
			DefaultServiceExpenseAccount: b.ExpenseAccount,
		})
		if err != nil {
			log.Fatal().Err(err).Str("company", b.Company).Msg("crear empresa inicial")
		}
		if created {
			log.Info().Str("company", b.Company).Msg("empresa inicial creada")
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, repos.Companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	quotationUC := selling.NewQuotationUseCase(engine, repos, selling.Config{
		AllowExpiredQuotation: cfg.Selling.AllowExpiredQuotation,
	}, log)
	pdfGenerator := infrapdf.NewMarotoQuotationPDF(language.Spanish)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Power App API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:              authUC,
		CompanyUC:           companyUC,
		ExpenseTemplateUC:   accounts.NewExpenseTemplateUseCase(repos.ExpenseTemplates, log),
		JournalEntryUC:      accounts.NewJournalEntryUseCase(repos.JournalEntries),
		QuotationUC:         quotationUC,
		SalesOrderUC:        selling.NewSalesOrderUseCase(engine, repos, log),
		SupplierQuotationUC: buying.NewSupplierQuotationUseCase(engine, repos, log),
		MaterialRequestUC:   buying.NewMaterialRequestUseCase(engine, repos, log),
		ItemDetailsUC:       stock.NewItemDetailsUseCase(repos.Items, detailsCache, log),
		QuotationPDF:        printing.NewQuotationPDFUseCase(repos.Quotations, repos.Companies, pdfGenerator, log),
		JWTSecret:           cfg.JWT.Secret,
		Log:                 log,
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
