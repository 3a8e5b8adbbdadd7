// Command inbox mantiene la bandeja de notificaciones de un usuario contra la API:
// carga la lista al arrancar y refresca el contador de no leídas periódicamente.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/application/notification"
	"github.com/jhoicas/inventario-insights/internal/infrastructure/httpclient"
	"github.com/jhoicas/inventario-insights/pkg/config"
	"github.com/jhoicas/inventario-insights/pkg/logger"
)

// logAlerter avisa de fallos de lectura en el log. Un token rechazado se
// distingue de un backend caído.
type logAlerter struct {
	log zerolog.Logger
}

func (a logAlerter) Alert(_ context.Context, err error) {
	if httpclient.IsAuthFailure(err) {
		a.log.Error().Err(err).Msg("la API rechazó el token de la bandeja")
		return
	}
	a.log.Warn().Err(err).Msg("no se pudo sincronizar la bandeja")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "inbox",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpclient.NewNotificationClient(
		cfg.Notifications.APIBaseURL,
		cfg.Notifications.APIToken,
		cfg.Notifications.HTTPTimeout,
	)
	store := notification.NewStore(client, logAlerter{log: log.Component("alerts")}, log.Component("notification_store"))

	lastUnread := -1
	store.OnChange(func(st notification.State) {
		if st.Loading || st.UnreadCount == lastUnread {
			return
		}
		lastUnread = st.UnreadCount
		log.Info().Int("unread", st.UnreadCount).Int("items", len(st.Items)).Msg("bandeja actualizada")
	})

	if err := store.RefreshList(ctx); err != nil {
		log.Warn().Err(err).Msg("carga inicial de la bandeja")
	}

	handle, err := store.StartPolling(ctx, cfg.Notifications.PollInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar sondeo")
	}
	log.Info().
		Str("api", cfg.Notifications.APIBaseURL).
		Dur("interval", cfg.Notifications.PollInterval).
		Msg("sondeo de no leídas iniciado")

	<-ctx.Done()
	handle.Stop()
	log.Info().Msg("bandeja detenida")
}
