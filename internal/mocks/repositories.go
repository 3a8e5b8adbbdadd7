// Package mocks implementaciones en memoria de repositorios y puertos para tests.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// ── StockChangeRepository ─────────────────────────────────────────────────────

// StockChangeRepo devuelve Events o Err.
type StockChangeRepo struct {
	mu     sync.Mutex
	Events []entity.StockChangeEvent
	Err    error
	Calls  int
}

func (r *StockChangeRepo) ListAllStockChanges(_ context.Context) ([]entity.StockChangeEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.StockChangeEvent, len(r.Events))
	copy(out, r.Events)
	return out, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	mu       sync.Mutex
	Products []entity.Product
	Err      error
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Products {
		if r.Products[i].ID == id {
			p := r.Products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) ListAll(_ context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Product, len(r.Products))
	copy(out, r.Products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── NotificationRepository ────────────────────────────────────────────────────

// NotificationRepo bandeja en memoria; el orden de inserción define la recencia.
type NotificationRepo struct {
	mu    sync.Mutex
	items []entity.Notification
	Err   error
}

// NewNotificationRepo crea el repositorio con datos iniciales (más recientes primero).
func NewNotificationRepo(seed ...entity.Notification) *NotificationRepo {
	return &NotificationRepo{items: append([]entity.Notification(nil), seed...)}
}

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.items = append([]entity.Notification{*n}, r.items...)
	return nil
}

func (r *NotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (r *NotificationRepo) List(_ context.Context, limit int) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	n := len(r.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]entity.Notification, n)
	copy(out, r.items[:n])
	return out, nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	visible := r.items
	if limit > 0 && limit < len(visible) {
		visible = visible[:limit]
	}
	count := 0
	for _, n := range visible {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].IsRead = true
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var changed int64
	for i := range r.items {
		if !r.items[i].IsRead {
			r.items[i].IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (r *NotificationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Snapshot copia del contenido actual.
func (r *NotificationRepo) Snapshot() []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Notification(nil), r.items...)
}

// ── ActivityLogRepository ─────────────────────────────────────────────────────

// ActivityLogRepo log de auditoría en memoria. También satisface ports.AuditLog.
type ActivityLogRepo struct {
	mu      sync.Mutex
	Entries []entity.ActivityLogEntry
	Err     error
}

func (r *ActivityLogRepo) Append(_ context.Context, entry *entity.ActivityLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Entries = append(r.Entries, *entry)
	return nil
}

func (r *ActivityLogRepo) ListRecent(_ context.Context, limit int) ([]entity.ActivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.ActivityLogEntry, 0, len(r.Entries))
	for i := len(r.Entries) - 1; i >= 0; i-- {
		out = append(out, r.Entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Actions devuelve las acciones registradas en orden de llegada.
func (r *ActivityLogRepo) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Action)
	}
	return out
}

// Snapshot copia de las entradas.
func (r *ActivityLogRepo) Snapshot() []entity.ActivityLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.ActivityLogEntry(nil), r.Entries...)
}

// ── UserRepository ────────────────────────────────────────────────────────────

// UserRepo cuentas en memoria indexadas por username.
type UserRepo struct {
	Users map[string]entity.User
	Err   error
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.Users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
