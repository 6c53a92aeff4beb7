package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sigescola/sigescola-api/internal/application/auth"
	"github.com/sigescola/sigescola-api/internal/application/cadastros"
	"github.com/sigescola/sigescola-api/internal/application/cofre"
	"github.com/sigescola/sigescola-api/internal/application/financeiro"
	"github.com/sigescola/sigescola-api/internal/application/notificacoes"
	"github.com/sigescola/sigescola-api/internal/application/prestacao"
	infranfe "github.com/sigescola/sigescola-api/internal/infrastructure/nfe"
	infrapdf "github.com/sigescola/sigescola-api/internal/infrastructure/pdf"
	"github.com/sigescola/sigescola-api/internal/infrastructure/postgres"
	"github.com/sigescola/sigescola-api/internal/infrastructure/storage"
	httpRouter "github.com/sigescola/sigescola-api/internal/interfaces/http"
	"github.com/sigescola/sigescola-api/pkg/config"
	"github.com/sigescola/sigescola-api/pkg/logger"
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
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	entryRepo := postgres.NewFinancialEntryRepository(pool)
	processRepo := postgres.NewAccountabilityRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	schoolRepo := postgres.NewSchoolRepository(pool)
	programRepo := postgres.NewProgramRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	checklistRepo := postgres.NewDocumentChecklistRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	financeiroUC := financeiro.NewFinanceiroUseCase(entryRepo, processRepo)

	// PDF da Consolidação da Pesquisa de Preços, com QR de validação pública
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	invoiceParser := infranfe.NewParser()

	prestacaoUC := prestacao.NewPrestacaoUseCase(
		txRunner, entryRepo, processRepo, schoolRepo,
		reportGenerator, invoiceParser,
		cfg.App.PublicURL,
	)
	saveProcessUC := prestacao.NewSaveProcessUseCase(txRunner, entryRepo, processRepo)
	cofreUC := cofre.NewCofreUseCase(entryRepo, checklistRepo)
	cadastrosUC := cadastros.NewCadastrosUseCase(supplierRepo, schoolRepo, programRepo)
	notificacoesUC := notificacoes.NewNotificacoesUseCase(notificationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // anexos de até 20MB
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	deps := httpRouter.RouterDeps{
		AuthUC:       authUC,
		FinanceiroUC: financeiroUC,
		PrestacaoUC:  prestacaoUC,
		SaveProcess:  saveProcessUC,
		CofreUC:      cofreUC,
		CadastrosUC:  cadastrosUC,
		NotificUC:    notificacoesUC,
		JWTSecret:    cfg.JWT.Secret,
	}
	if cfg.Storage.BaseURL != "" {
		deps.Storage = storage.NewClient(cfg.Storage)
	} else {
		log.Warn().Msg("storage não configurado; upload de anexos desabilitado")
	}

	httpRouter.Router(app, deps)

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

	log.Info().Msg("aplicação encerrada")
}
