package kafka

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// EventHandler procesa un evento ya decodificado.
type EventHandler func(ctx context.Context, ev entity.DomainEvent) error

// Consumer lee eventos de dominio dentro de un consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    zerolog.Logger
}

// NewConsumer construye el reader del grupo groupID.
func NewConsumer(brokers []string, topic, groupID string, log zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, log: log}
}

// Consume procesa mensajes hasta que ctx se cancela. Cada mensaje se confirma
// tras el handler aunque falle: los efectos del correlador son best-effort y un
// mensaje malformado no debe bloquear la partición.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			c.log.Warn().Err(err).Msg("error leyendo mensaje de kafka")
			continue
		}

		ev, err := DecodeEvent(msg.Value)
		if err != nil {
			c.log.Warn().Err(err).Int("partition", msg.Partition).Int64("offset", msg.Offset).Msg("mensaje descartado")
		} else if err := handler(ctx, ev); err != nil {
			c.log.Error().Err(err).Str("kind", string(ev.Kind)).Msg("error procesando evento")
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.log.Warn().Err(err).Int64("offset", msg.Offset).Msg("no se pudo confirmar el offset")
		}
	}
}

// Close cierra el reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
