// Package activity traduce eventos de dominio en entradas del log de auditoría y
// notificaciones derivadas. Todos los efectos son best-effort: se despachan en
// segundo plano y sus fallos nunca llegan a la operación que los originó.
package activity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/inventory"
)

// Effects resultado puro de correlacionar un evento.
type Effects struct {
	Entry        entity.ActivityLogEntry
	Notification *entity.NotificationRequest // nil: solo auditoría
}

// Correlator aplica la tabla evento → (auditoría, notificación).
type Correlator struct {
	audit      ports.AuditLog
	notifier   ports.NotificationCreator
	actors     ports.ActorProvider
	deduper    ports.AlertDeduper
	dispatcher *Dispatcher
	now        func() time.Time
	log        zerolog.Logger

	// alertMu serializa la decisión de dedupe en el orden de llegada de los eventos.
	alertMu sync.Mutex
}

const alertDecisionTimeout = 5 * time.Second

// NewCorrelator construye el correlador. deduper nil usa uno en memoria sin expiración;
// actors nil atribuye todo a entity.UnknownActor.
func NewCorrelator(
	audit ports.AuditLog,
	notifier ports.NotificationCreator,
	actors ports.ActorProvider,
	deduper ports.AlertDeduper,
	dispatcher *Dispatcher,
	log zerolog.Logger,
) *Correlator {
	if deduper == nil {
		deduper = NewMemoryDeduper(0)
	}
	return &Correlator{
		audit:      audit,
		notifier:   notifier,
		actors:     actors,
		deduper:    deduper,
		dispatcher: dispatcher,
		now:        time.Now,
		log:        log,
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Correlator) WithClock(now func() time.Time) *Correlator {
	c.now = now
	return c
}

// Handle despacha los efectos de ev. La decisión de alerta de stock se toma en
// línea, en orden de llegada; auditoría y notificaciones van al dispatcher.
func (c *Correlator) Handle(ctx context.Context, ev entity.DomainEvent) {
	actor := c.resolveActor(ctx, ev)
	at := ev.OccurredAt
	if at.IsZero() {
		at = c.now()
	}
	fx := Plan(ev, actor, at)

	if !ev.Kind.Known() {
		c.log.Warn().Str("kind", string(ev.Kind)).Msg("evento de dominio desconocido; solo auditoría")
	}

	entry := fx.Entry
	c.dispatcher.Go(ctx, "activity_log", func(ctx context.Context) error {
		return c.audit.Append(ctx, &entry)
	})

	if fx.Notification != nil {
		req := *fx.Notification
		c.dispatcher.Go(ctx, "notification", func(ctx context.Context) error {
			_, err := c.notifier.Create(ctx, req)
			return err
		})
	}

	if ev.Kind.IsStockMovement() && ev.ResultingQuantity != nil && ev.ThresholdQuantity != nil {
		c.stockAlert(ctx, ev)
	}
}

// Publish permite usar el correlador como ports.EventPublisher en proceso.
func (c *Correlator) Publish(ctx context.Context, ev entity.DomainEvent) error {
	c.Handle(ctx, ev)
	return nil
}

func (c *Correlator) resolveActor(ctx context.Context, ev entity.DomainEvent) entity.Actor {
	if ev.Actor != nil && !ev.Actor.IsUnknown() {
		return *ev.Actor
	}
	if c.actors == nil {
		return entity.UnknownActor
	}
	return c.actors.CurrentActor(ctx)
}

// ── Alertas de stock ──────────────────────────────────────────────────────────

// stockAlert emite low_stock / out_of_stock una sola vez por (producto, estado)
// hasta que el producto vuelve a estar en stock. La decisión se toma en línea;
// solo la creación de la notificación va al dispatcher.
func (c *Correlator) stockAlert(ctx context.Context, ev entity.DomainEvent) {
	req, key, err := c.claimAlert(ctx, ev)
	if err != nil {
		c.dispatcher.Report("stock_alert", err)
		return
	}
	if key == "" {
		return
	}

	c.dispatcher.Go(ctx, "stock_alert", func(ctx context.Context) error {
		if _, err := c.notifier.Create(ctx, req); err != nil {
			if rerr := c.deduper.Release(ctx, key); rerr != nil {
				c.log.Warn().Err(rerr).Str("key", key).Msg("no se pudo liberar la clave de alerta")
			}
			return err
		}
		return nil
	})
}

// claimAlert clasifica el stock resultante y reserva la clave de dedupe.
// key vacía: no hay alerta que emitir.
func (c *Correlator) claimAlert(ctx context.Context, ev entity.DomainEvent) (entity.NotificationRequest, string, error) {
	c.alertMu.Lock()
	defer c.alertMu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertDecisionTimeout)
	defer cancel()

	qty := *ev.ResultingQuantity
	if qty < 0 {
		qty = 0
	}
	status := inventory.Classify(qty, *ev.ThresholdQuantity)
	productKey := ev.EntityID
	if productKey == "" {
		productKey = ev.Name
	}

	if status == entity.StatusInStock {
		err := c.deduper.Release(ctx,
			AlertKey(productKey, entity.StatusRestock),
			AlertKey(productKey, entity.StatusOutOfStock))
		return entity.NotificationRequest{}, "", err
	}

	key := AlertKey(productKey, status)
	acquired, err := c.deduper.Acquire(ctx, key)
	if err != nil {
		return entity.NotificationRequest{}, "", fmt.Errorf("dedupe %s: %w", key, err)
	}
	if !acquired {
		return entity.NotificationRequest{}, "", nil
	}
	return StockAlert(ev, status, qty), key, nil
}

// StockAlert construye la notificación de alerta para status (Restock u OutOfStock).
func StockAlert(ev entity.DomainEvent, status entity.StockStatus, qty int) entity.NotificationRequest {
	req := entity.NotificationRequest{
		Severity:          entity.SeverityMedium,
		RelatedEntityType: "product",
		RelatedEntityID:   ev.EntityID,
	}
	if status == entity.StatusOutOfStock {
		req.Type = entity.NotificationOutOfStock
		req.Title = "Producto agotado"
		req.Message = fmt.Sprintf("%s se agotó", productLabel(ev))
		return req
	}
	req.Type = entity.NotificationLowStock
	req.Title = "Stock bajo"
	req.Message = fmt.Sprintf("%s tiene %s (umbral: %d)", productLabel(ev), units(qty), *ev.ThresholdQuantity)
	return req
}

// ── Tabla de correlación ──────────────────────────────────────────────────────

// Plan calcula la entrada de auditoría y la notificación (si corresponde) para ev.
// Función pura: no toca colaboradores.
func Plan(ev entity.DomainEvent, actor entity.Actor, at time.Time) Effects {
	action, details := describe(ev)
	fx := Effects{
		Entry: entity.ActivityLogEntry{
			UserID:    actor.UserID,
			Username:  actor.Username,
			Action:    action,
			Details:   details,
			CreatedAt: at,
		},
	}

	notify := func(t entity.NotificationType, title, msg string) {
		fx.Notification = &entity.NotificationRequest{
			Title:             title,
			Message:           msg,
			Type:              t,
			Severity:          entity.SeverityMedium,
			RelatedEntityType: "product",
			RelatedEntityID:   ev.EntityID,
		}
	}

	switch ev.Kind {
	case entity.EventProductCreated:
		notify(entity.NotificationGeneral, "Nuevo producto",
			fmt.Sprintf("%s fue creado por %s", productLabel(ev), actor.Username))
	case entity.EventSaleRecorded:
		notify(entity.NotificationSaleRecorded, "Venta registrada",
			fmt.Sprintf("Se vendieron %s de %s", units(ev.Quantity), productLabel(ev)))
	case entity.EventStockAdded:
		notify(entity.NotificationStockAddition, "Stock agregado",
			fmt.Sprintf("Se agregaron %s a %s", units(ev.Quantity), productLabel(ev)))
	case entity.EventInventoryAdjusted:
		notify(entity.NotificationInventoryAdjustment, "Ajuste de inventario",
			fmt.Sprintf("%s ajustado en %+d", productLabel(ev), ev.Quantity))
	}
	return fx
}

type noun struct {
	name     string
	feminine bool
}

var entityNouns = map[string]noun{
	"user":  {"Usuario", false},
	"unit":  {"Unidad", true},
	"color": {"Color", false},
	"size":  {"Talla", true},
}

func describe(ev entity.DomainEvent) (action, details string) {
	switch ev.Kind {
	case entity.EventProductCreated:
		return "Producto creado", fmt.Sprintf("%s creado con %s", productLabel(ev), units(ev.Quantity))
	case entity.EventProductUpdated:
		return "Producto actualizado", fmt.Sprintf("%s: %s", productLabel(ev), DiffFields(ev.Before, ev.After))
	case entity.EventProductDeleted:
		return "Producto eliminado", fmt.Sprintf("%s eliminado", productLabel(ev))
	case entity.EventSaleRecorded:
		return "Venta registrada", fmt.Sprintf("Venta de %s de %s", units(ev.Quantity), productLabel(ev))
	case entity.EventStockAdded:
		return "Stock agregado", fmt.Sprintf("Entrada de %s a %s", units(ev.Quantity), productLabel(ev))
	case entity.EventInventoryAdjusted:
		d := fmt.Sprintf("Ajuste de %+d en %s", ev.Quantity, productLabel(ev))
		if ev.Note != "" {
			d += ". Motivo: " + ev.Note
		}
		return "Inventario ajustado", d

	case entity.EventUserCreated, entity.EventUnitCreated, entity.EventColorCreated, entity.EventSizeCreated:
		n := nounFor(ev.Kind)
		return n.name + " " + n.agree("creado"), fmt.Sprintf("%s %q %s", n.name, ev.Name, n.agree("creado"))
	case entity.EventUserUpdated, entity.EventUnitUpdated, entity.EventColorUpdated, entity.EventSizeUpdated:
		n := nounFor(ev.Kind)
		return n.name + " " + n.agree("actualizado"), fmt.Sprintf("%s %q: %s", n.name, ev.Name, DiffFields(ev.Before, ev.After))
	case entity.EventUserDeleted, entity.EventUnitDeleted, entity.EventColorDeleted, entity.EventSizeDeleted:
		n := nounFor(ev.Kind)
		return n.name + " " + n.agree("eliminado"), fmt.Sprintf("%s %q %s", n.name, ev.Name, n.agree("eliminado"))

	case entity.EventCSVImported:
		return "CSV importado", withNote("Importación de productos desde CSV", ev.Note)
	case entity.EventCSVExported:
		return "CSV exportado", withNote("Exportación de productos a CSV", ev.Note)
	case entity.EventReportGenerated:
		return "Reporte generado", withNote("Reporte generado", ev.Note)
	}
	return string(ev.Kind), withNote("Evento sin descripción", ev.Note)
}

func nounFor(k entity.EventKind) noun {
	prefix, _, _ := strings.Cut(string(k), "_")
	if n, ok := entityNouns[prefix]; ok {
		return n
	}
	return noun{name: prefix}
}

// agree concuerda un participio terminado en "o" con el género del sustantivo.
func (n noun) agree(participle string) string {
	if n.feminine {
		return strings.TrimSuffix(participle, "o") + "a"
	}
	return participle
}

func withNote(s, note string) string {
	if note == "" {
		return s
	}
	return s + ": " + note
}

// productLabel ej: `"Camisa" (Rojo, M)`.
func productLabel(ev entity.DomainEvent) string {
	var variant []string
	if ev.Color != "" {
		variant = append(variant, ev.Color)
	}
	if ev.Size != "" {
		variant = append(variant, ev.Size)
	}
	label := fmt.Sprintf("%q", ev.Name)
	if len(variant) > 0 {
		label += " (" + strings.Join(variant, ", ") + ")"
	}
	return label
}

func units(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d unidad", n)
	}
	return fmt.Sprintf("%d unidades", n)
}
