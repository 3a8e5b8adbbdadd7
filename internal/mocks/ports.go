package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// ── NotificationTransport ─────────────────────────────────────────────────────

// Transport NotificationTransport programable. Cada *Err, si no es nil, se devuelve
// en la operación correspondiente; Calls registra el orden de las llamadas.
type Transport struct {
	mu sync.Mutex

	Items  []entity.Notification
	Unread int

	ListErr     error
	UnreadErr   error
	MarkReadErr error
	MarkAllErr  error
	CreateErr   error
	DeleteErr   error

	// Block, si no es nil, se lee antes de responder List (para tests de concurrencia).
	Block chan struct{}

	Calls   []string
	created int
}

func (t *Transport) record(call string) {
	t.Calls = append(t.Calls, call)
}

func (t *Transport) List(ctx context.Context) ([]entity.Notification, error) {
	if t.Block != nil {
		select {
		case <-t.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("list")
	if t.ListErr != nil {
		return nil, t.ListErr
	}
	return append([]entity.Notification(nil), t.Items...), nil
}

func (t *Transport) UnreadCount(_ context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("unread_count")
	if t.UnreadErr != nil {
		return 0, t.UnreadErr
	}
	return t.Unread, nil
}

func (t *Transport) MarkRead(_ context.Context, id string) (*entity.Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("mark_read:" + id)
	if t.MarkReadErr != nil {
		return nil, t.MarkReadErr
	}
	for i := range t.Items {
		if t.Items[i].ID == id {
			if !t.Items[i].IsRead && t.Unread > 0 {
				t.Unread--
			}
			t.Items[i].IsRead = true
			n := t.Items[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (t *Transport) MarkAllRead(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("mark_all_read")
	if t.MarkAllErr != nil {
		return t.MarkAllErr
	}
	for i := range t.Items {
		t.Items[i].IsRead = true
	}
	t.Unread = 0
	return nil
}

func (t *Transport) Create(_ context.Context, req entity.NotificationRequest) (*entity.Notification, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("create")
	if t.CreateErr != nil {
		return nil, t.CreateErr
	}
	t.created++
	n := entity.Notification{
		ID:                fmt.Sprintf("n-%d", t.created),
		Title:             req.Title,
		Message:           req.Message,
		Type:              req.Type,
		Severity:          req.Severity,
		CreatedAt:         time.Now(),
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	}
	t.Items = append([]entity.Notification{n}, t.Items...)
	t.Unread++
	return &n, nil
}

func (t *Transport) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("delete:" + id)
	if t.DeleteErr != nil {
		return t.DeleteErr
	}
	for i := range t.Items {
		if t.Items[i].ID == id {
			if !t.Items[i].IsRead && t.Unread > 0 {
				t.Unread--
			}
			t.Items = append(t.Items[:i], t.Items[i+1:]...)
			break
		}
	}
	return nil
}

// CallLog copia de las llamadas registradas.
func (t *Transport) CallLog() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.Calls...)
}

// CountCalls cuántas veces se llamó a call.
func (t *Transport) CountCalls(call string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// ── NotificationCreator ───────────────────────────────────────────────────────

// Creator registra las solicitudes de notificación.
type Creator struct {
	mu       sync.Mutex
	Requests []entity.NotificationRequest
	Err      error
}

func (c *Creator) Create(_ context.Context, req entity.NotificationRequest) (*entity.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	c.Requests = append(c.Requests, req)
	return &entity.Notification{ID: fmt.Sprintf("n-%d", len(c.Requests)), Title: req.Title, Message: req.Message,
		Type: req.Type, Severity: req.Severity, CreatedAt: time.Now()}, nil
}

// Snapshot copia de las solicitudes.
func (c *Creator) Snapshot() []entity.NotificationRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.NotificationRequest(nil), c.Requests...)
}

// ── Colaboradores ─────────────────────────────────────────────────────────────

// FixedActor ActorProvider que siempre devuelve Actor.
type FixedActor struct {
	Actor entity.Actor
}

func (f FixedActor) CurrentActor(context.Context) entity.Actor {
	if f.Actor == (entity.Actor{}) {
		return entity.UnknownActor
	}
	return f.Actor
}

// Alerter registra los errores alertados.
type Alerter struct {
	mu   sync.Mutex
	Errs []error
}

func (a *Alerter) Alert(_ context.Context, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Errs = append(a.Errs, err)
}

// Count número de alertas recibidas.
func (a *Alerter) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Errs)
}

// Publisher EventPublisher que acumula los eventos.
type Publisher struct {
	mu     sync.Mutex
	Events []entity.DomainEvent
	Err    error
}

func (p *Publisher) Publish(_ context.Context, ev entity.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, ev)
	return nil
}

// Snapshot copia de los eventos publicados.
func (p *Publisher) Snapshot() []entity.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.DomainEvent(nil), p.Events...)
}

// Renderer SalesReportRenderer que devuelve Out y guarda los datos recibidos.
type Renderer struct {
	mu   sync.Mutex
	Data []ports.SalesReportData
	Out  []byte
	Err  error
}

func (r *Renderer) RenderSalesReport(_ context.Context, data ports.SalesReportData) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Data = append(r.Data, data)
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Out, nil
}
