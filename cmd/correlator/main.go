// Command correlator consume los eventos de dominio del bus Kafka y los traduce
// a entradas de auditoría y notificaciones.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jhoicas/inventario-insights/internal/application/activity"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	infrakafka "github.com/jhoicas/inventario-insights/internal/infrastructure/kafka"
	"github.com/jhoicas/inventario-insights/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-insights/internal/infrastructure/redis"
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
		Service: "correlator",
	})
	if !cfg.Kafka.Enabled() {
		log.Fatal().Msg("KAFKA_BROKERS requerido para el correlador")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	activityUC := usecase.NewActivityUseCase(postgres.NewActivityLogRepository(pool))
	notificationUC := usecase.NewNotificationUseCase(postgres.NewNotificationRepository(pool), log.Component("notifications"))

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

	consumer := infrakafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, log.Component("kafka_consumer"))
	log.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.Topic).
		Str("group", cfg.Kafka.GroupID).
		Msg("correlador escuchando eventos")

	err = consumer.Consume(ctx, func(ctx context.Context, ev entity.DomainEvent) error {
		correlator.Handle(ctx, ev)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("consumo interrumpido")
	}

	if err := consumer.Close(); err != nil {
		log.Warn().Err(err).Msg("cerrar consumer")
	}
	dispatcher.Close()
	log.Info().Int("best_effort_failures", <-failures).Msg("correlador detenido")
}
