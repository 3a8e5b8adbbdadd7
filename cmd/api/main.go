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

	"github.com/jhoicas/inventario-insights/docs"
	"github.com/jhoicas/inventario-insights/internal/application/activity"
	"github.com/jhoicas/inventario-insights/internal/application/analytics"
	"github.com/jhoicas/inventario-insights/internal/application/auth"
	"github.com/jhoicas/inventario-insights/internal/application/inventory"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
	infrakafka "github.com/jhoicas/inventario-insights/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/inventario-insights/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-insights/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-insights/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/inventario-insights/internal/interfaces/http"
	"github.com/jhoicas/inventario-insights/pkg/config"
	"github.com/jhoicas/inventario-insights/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockChangeRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)

	notificationUC := usecase.NewNotificationUseCase(notificationRepo, log.Component("notifications"))
	activityUC := usecase.NewActivityUseCase(activityRepo)

	// Deduplicación de alertas de stock: Redis si está configurado, si no en memoria.
	var deduper ports.AlertDeduper = activity.NewMemoryDeduper(cfg.Redis.AlertTTL)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		deduper = infraredis.NewAlertDeduper(rdb, cfg.Redis.AlertTTL)
	}

	dispatcher := activity.NewDispatcher(log.Component("dispatcher"), 0)
	correlator := activity.NewCorrelator(
		activityUC, notificationUC, activity.ContextActorProvider{},
		deduper, dispatcher, log.Component("correlator"),
	)

	// Contador de fallos best-effort; el detalle ya quedó en el log del dispatcher.
	failures := dispatcher.DrainErrors()

	// Eventos de dominio: al bus si hay brokers; si no, el correlador en proceso.
	var events ports.EventPublisher = correlator
	via := "inprocess"
	if cfg.Kafka.Enabled() {
		producer := infrakafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		events, via = producer, "kafka"
	}

	loc := cfg.Reports.Location()
	salesUC := analytics.NewSalesAnalyticsUseCase(stockRepo, loc, cfg.Reports.TopN, log.Component("sales_analytics"))
	statusUC := inventory.NewStatusUseCase(productRepo, log.Component("stock_status"))
	reportUC := analytics.NewReportUseCase(
		salesUC, statusUC, infrapdf.NewSalesReportGenerator(),
		events, activity.ContextActorProvider{}, log.Component("reports"),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Inventario Insights API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "events": via})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		SalesUC:        salesUC,
		ReportUC:       reportUC,
		StatusUC:       statusUC,
		NotificationUC: notificationUC,
		ActivityUC:     activityUC,
		Events:         events,
		EventsVia:      via,
		JWTSecret:      cfg.JWT.Secret,
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

	// Efectos de auditoría y notificaciones pendientes.
	dispatcher.Close()

	log.Info().Int("best_effort_failures", <-failures).Msg("aplicación detenida")
}
