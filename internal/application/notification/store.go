// Package notification mantiene la caché local de la bandeja de notificaciones
// y su contador de no leídas, sincronizada contra un NotificationTransport.
//
// Máquina de estados por notificación:
//
//	Unread → Read        (solo en ese sentido)
//	{Unread, Read} → Deleted  (terminal)
package notification

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// State instantánea observable del store.
type State struct {
	Items       []entity.Notification
	UnreadCount int
	Loading     bool
	LastError   error
}

// Store caché de notificaciones. Seguro para uso concurrente; el candado no se
// mantiene durante las llamadas remotas. Si dos refrescos se solapan gana el
// último en terminar.
type Store struct {
	transport ports.NotificationTransport
	alerter   ports.Alerter
	log       zerolog.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)

	pollMu sync.Mutex
	poll   *PollHandle
}

// NewStore construye el store. alerter puede ser nil.
func NewStore(transport ports.NotificationTransport, alerter ports.Alerter, log zerolog.Logger) *Store {
	return &Store{
		transport: transport,
		alerter:   alerter,
		log:       log,
		state:     State{Items: []entity.Notification{}},
	}
}

// OnChange registra un listener que recibe el estado tras cada mutación.
// Los listeners se ejecutan fuera del candado, en la goroutine que mutó.
func (s *Store) OnChange(fn func(State)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Snapshot devuelve una copia del estado actual.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Items atajo de Snapshot().Items.
func (s *Store) Items() []entity.Notification { return s.Snapshot().Items }

// UnreadCount atajo de Snapshot().UnreadCount.
func (s *Store) UnreadCount() int { return s.Snapshot().UnreadCount }

// ── Lecturas ──────────────────────────────────────────────────────────────────

// RefreshList trae la lista completa, la ordena de más reciente a más antigua y
// recalcula el contador. Ante cualquier fallo deja la lista vacía y el contador en 0;
// una cancelación de ctx no toca la caché ni alerta.
func (s *Store) RefreshList(ctx context.Context) error {
	s.mutate(func(st *State) { st.Loading = true })

	items, err := s.transport.List(ctx)
	if err != nil && ctx.Err() != nil {
		s.mutate(func(st *State) { st.Loading = false })
		return ctx.Err()
	}
	if err != nil {
		err = normalize("list_notifications", err)
		s.mutate(func(st *State) {
			st.Items = []entity.Notification{}
			st.UnreadCount = 0
			st.Loading = false
			st.LastError = err
		})
		s.fail(ctx, "no se pudo cargar la bandeja", err)
		return err
	}

	sorted := make([]entity.Notification, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	unread := 0
	for _, n := range sorted {
		if !n.IsRead {
			unread++
		}
	}

	s.mutate(func(st *State) {
		st.Items = sorted
		st.UnreadCount = unread
		st.Loading = false
		st.LastError = nil
	})
	return nil
}

// RefreshUnreadCount trae solo el contador. Un valor negativo se trata como
// respuesta malformada. Ante cualquier fallo el contador vuelve a 0, salvo que
// ctx se haya cancelado: entonces el estado queda intacto y no se alerta.
func (s *Store) RefreshUnreadCount(ctx context.Context) error {
	count, err := s.transport.UnreadCount(ctx)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil && count < 0 {
		err = domain.NewMalformedResponseError("unread_count", "contador negativo", nil)
	}
	if err != nil {
		err = normalize("unread_count", err)
		s.mutate(func(st *State) {
			st.UnreadCount = 0
			st.LastError = err
		})
		s.fail(ctx, "no se pudo consultar el contador de no leídas", err)
		return err
	}
	s.mutate(func(st *State) {
		st.UnreadCount = count
		st.LastError = nil
	})
	return nil
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// MarkAsRead marca id como leída. Si está en caché y no leída, se actualiza de
// forma optimista antes de la llamada remota y no se revierte si esta falla.
// Sobre un id ya leído no hace nada. Un id desconocido se envía al remoto sin
// tocar la caché.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx >= 0 && s.state.Items[idx].IsRead {
		s.mu.Unlock()
		return nil
	}
	if idx >= 0 {
		s.state.Items[idx].IsRead = true
		if s.state.UnreadCount > 0 {
			s.state.UnreadCount--
		}
	}
	snap, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()
	if idx >= 0 {
		emit(listeners, snap)
	}

	if _, err := s.transport.MarkRead(ctx, id); err != nil {
		err = normalize("mark_read", err)
		s.mutate(func(st *State) { st.LastError = err })
		s.fail(ctx, "no se pudo marcar la notificación como leída", err)
		return err
	}
	return nil
}

// MarkAllAsRead marca todas como leídas en el remoto y, solo si tuvo éxito, en la caché.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	if err := s.transport.MarkAllRead(ctx); err != nil {
		err = normalize("mark_all_read", err)
		s.mutate(func(st *State) { st.LastError = err })
		s.fail(ctx, "no se pudieron marcar las notificaciones como leídas", err)
		return err
	}
	s.mutate(func(st *State) {
		for i := range st.Items {
			st.Items[i].IsRead = true
		}
		st.UnreadCount = 0
		st.LastError = nil
	})
	return nil
}

// Delete elimina id en el remoto y después de la caché. El contador solo baja
// si la notificación eliminada estaba sin leer. Si el remoto ya no la tiene
// (domain.ErrNotFound) se da por eliminada.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.transport.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		err = normalize("delete_notification", err)
		s.mutate(func(st *State) { st.LastError = err })
		s.fail(ctx, "no se pudo eliminar la notificación", err)
		return err
	}
	s.mutate(func(st *State) {
		for i := range st.Items {
			if st.Items[i].ID != id {
				continue
			}
			if !st.Items[i].IsRead && st.UnreadCount > 0 {
				st.UnreadCount--
			}
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
			return
		}
	})
	return nil
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap, listeners := s.snapshotLocked(), s.listeners
	s.mu.Unlock()
	emit(listeners, snap)
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Items = append([]entity.Notification(nil), s.state.Items...)
	if st.Items == nil {
		st.Items = []entity.Notification{}
	}
	return st
}

func (s *Store) indexLocked(id string) int {
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fail(ctx context.Context, msg string, err error) {
	s.log.Warn().Err(err).Msg(msg)
	if s.alerter != nil {
		s.alerter.Alert(ctx, err)
	}
}

func emit(listeners []func(State), st State) {
	for _, fn := range listeners {
		fn(st)
	}
}

// normalize conserva los errores ya tipados y envuelve el resto como transporte.
func normalize(op string, err error) error {
	if domain.IsReadFailure(err) {
		return err
	}
	return domain.NewTransportError(op, err)
}
