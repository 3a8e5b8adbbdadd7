package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

var _ ports.EventPublisher = (*Producer)(nil)

// Producer publica eventos de dominio en el tópico configurado.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer construye el writer (balanceo por hash de la clave).
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	}
	return &Producer{writer: writer}
}

// Publish serializa y escribe ev. Los fallos del broker son domain.TransportError.
func (p *Producer) Publish(ctx context.Context, ev entity.DomainEvent) error {
	data, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	at := ev.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   messageKey(ev),
		Value: data,
		Time:  at,
	})
	return domain.NewTransportError("kafka_publish", err)
}

// Close vacía el buffer y cierra el writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
