package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-insights/internal/application/notification"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/mocks"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var base = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

func notif(id string, read bool, minutesAgo int) entity.Notification {
	return entity.Notification{
		ID:        id,
		Title:     "Stock bajo",
		Message:   "Quedan pocas unidades",
		Type:      entity.NotificationLowStock,
		Severity:  entity.SeverityMedium,
		IsRead:    read,
		CreatedAt: base.Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

// loadedStore devuelve un store ya refrescado con a (no leída), b (leída), c (no leída).
func loadedStore(t *testing.T) (*notification.Store, *mocks.Transport, *mocks.Alerter) {
	t.Helper()
	tr := &mocks.Transport{
		Items:  []entity.Notification{notif("b", true, 20), notif("a", false, 5), notif("c", false, 60)},
		Unread: 2,
	}
	al := &mocks.Alerter{}
	s := notification.NewStore(tr, al, zerolog.Nop())
	require.NoError(t, s.RefreshList(context.Background()))
	return s, tr, al
}

func ids(items []entity.Notification) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// RefreshList / RefreshUnreadCount
// ──────────────────────────────────────────────────────────────────────────────

func TestRefreshList_OrdenaRecientesPrimeroYCuentaNoLeidas(t *testing.T) {
	s, _, al := loadedStore(t)

	st := s.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, ids(st.Items))
	assert.Equal(t, 2, st.UnreadCount)
	assert.False(t, st.Loading)
	assert.NoError(t, st.LastError)
	assert.Zero(t, al.Count())
}

func TestRefreshList_ErrorDeTransporteVaciaCacheYAlerta(t *testing.T) {
	s, tr, al := loadedStore(t)
	tr.ListErr = errors.New("dial tcp: connection refused")

	err := s.RefreshList(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)

	st := s.Snapshot()
	assert.Empty(t, st.Items)
	assert.NotNil(t, st.Items)
	assert.Zero(t, st.UnreadCount)
	assert.ErrorIs(t, st.LastError, domain.ErrTransport)
	assert.Equal(t, 1, al.Count())
}

func TestRefreshList_RespuestaMalformadaNoEntraEnPanico(t *testing.T) {
	tr := &mocks.Transport{ListErr: domain.NewMalformedResponseError("list_notifications", "se esperaba una lista", nil)}
	s := notification.NewStore(tr, nil, zerolog.Nop())

	var err error
	assert.NotPanics(t, func() { err = s.RefreshList(context.Background()) })
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Empty(t, s.Items())
	assert.Zero(t, s.UnreadCount())
}

func TestRefreshUnreadCount_ActualizaSoloElContador(t *testing.T) {
	s, tr, _ := loadedStore(t)
	tr.Unread = 7

	require.NoError(t, s.RefreshUnreadCount(context.Background()))
	assert.Equal(t, 7, s.UnreadCount())
	assert.Len(t, s.Items(), 3)
}

func TestRefreshUnreadCount_NegativoEsMalformado(t *testing.T) {
	s, tr, al := loadedStore(t)
	tr.Unread = -3

	err := s.RefreshUnreadCount(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Zero(t, s.UnreadCount())
	assert.Equal(t, 1, al.Count())
}

func TestRefreshUnreadCount_ErrorReiniciaACero(t *testing.T) {
	s, tr, _ := loadedStore(t)
	tr.UnreadErr = errors.New("timeout")

	err := s.RefreshUnreadCount(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Zero(t, s.UnreadCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkAsRead
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAsRead_EsIdempotente(t *testing.T) {
	s, tr, _ := loadedStore(t)

	require.NoError(t, s.MarkAsRead(context.Background(), "a"))
	assert.Equal(t, 1, s.UnreadCount())
	require.NoError(t, s.MarkAsRead(context.Background(), "a"))
	assert.Equal(t, 1, s.UnreadCount())

	assert.Equal(t, 1, tr.CountCalls("mark_read:a"), "la segunda llamada no va al remoto")
	assert.True(t, s.Items()[0].IsRead)
}

func TestMarkAsRead_OptimistaSinReversionSiFallaElRemoto(t *testing.T) {
	s, tr, al := loadedStore(t)
	tr.MarkReadErr = errors.New("503")

	err := s.MarkAsRead(context.Background(), "c")
	assert.ErrorIs(t, err, domain.ErrTransport)

	assert.Equal(t, 1, s.UnreadCount())
	items := s.Items()
	assert.True(t, items[2].IsRead)
	assert.Equal(t, 1, al.Count())
}

func TestMarkAsRead_IdDesconocidoSeEnviaSinTocarCache(t *testing.T) {
	s, tr, _ := loadedStore(t)
	before := s.Snapshot()

	require.NoError(t, s.MarkAsRead(context.Background(), "zzz"))
	assert.Equal(t, 1, tr.CountCalls("mark_read:zzz"))

	after := s.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.UnreadCount, after.UnreadCount)
}

func TestMarkAsRead_ContadorNuncaNegativo(t *testing.T) {
	tr := &mocks.Transport{Items: []entity.Notification{notif("a", false, 1)}, Unread: 0}
	s := notification.NewStore(tr, nil, zerolog.Nop())
	require.NoError(t, s.RefreshList(context.Background()))
	require.NoError(t, s.RefreshUnreadCount(context.Background()))
	require.Zero(t, s.UnreadCount())

	require.NoError(t, s.MarkAsRead(context.Background(), "a"))
	assert.Zero(t, s.UnreadCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkAllAsRead / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAllAsRead_ExitoMarcaTodoYPoneCero(t *testing.T) {
	s, _, _ := loadedStore(t)

	require.NoError(t, s.MarkAllAsRead(context.Background()))
	assert.Zero(t, s.UnreadCount())
	for _, n := range s.Items() {
		assert.True(t, n.IsRead)
	}
}

func TestMarkAllAsRead_FalloNoCambiaLaCache(t *testing.T) {
	s, tr, _ := loadedStore(t)
	tr.MarkAllErr = errors.New("500")

	assert.Error(t, s.MarkAllAsRead(context.Background()))
	assert.Equal(t, 2, s.UnreadCount())
	assert.False(t, s.Items()[0].IsRead)
}

func TestDelete_NoLeidaDecrementaContador(t *testing.T) {
	s, _, _ := loadedStore(t)

	require.NoError(t, s.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"b", "c"}, ids(s.Items()))
	assert.Equal(t, 1, s.UnreadCount())
}

func TestDelete_LeidaNoCambiaContador(t *testing.T) {
	s, _, _ := loadedStore(t)

	require.NoError(t, s.Delete(context.Background(), "b"))
	assert.Equal(t, []string{"a", "c"}, ids(s.Items()))
	assert.Equal(t, 2, s.UnreadCount())
}

func TestDelete_FalloRemotoConservaElItem(t *testing.T) {
	s, tr, al := loadedStore(t)
	tr.DeleteErr = errors.New("connection reset")

	assert.ErrorIs(t, s.Delete(context.Background(), "a"), domain.ErrTransport)
	assert.Len(t, s.Items(), 3)
	assert.Equal(t, 2, s.UnreadCount())
	assert.Equal(t, 1, al.Count())
}

func TestDelete_NoEncontradoEnRemotoSeQuitaDeLaCache(t *testing.T) {
	s, tr, al := loadedStore(t)
	tr.DeleteErr = domain.ErrNotFound

	require.NoError(t, s.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"b", "c"}, ids(s.Items()))
	assert.Equal(t, 1, s.UnreadCount())
	assert.Zero(t, al.Count())
}

func TestRefreshList_CancelacionNoVaciaLaCacheNiAlerta(t *testing.T) {
	s, tr, al := loadedStore(t)
	tr.Block = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.RefreshList(ctx), context.Canceled)
	assert.Len(t, s.Items(), 3)
	assert.Equal(t, 2, s.UnreadCount())
	assert.False(t, s.Snapshot().Loading)
	assert.NoError(t, s.Snapshot().LastError)
	assert.Zero(t, al.Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Listeners / concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestOnChange_RecibeEstadoTrasMutacion(t *testing.T) {
	s, _, _ := loadedStore(t)

	var mu sync.Mutex
	var seen []int
	s.OnChange(func(st notification.State) {
		mu.Lock()
		seen = append(seen, st.UnreadCount)
		mu.Unlock()
	})

	require.NoError(t, s.MarkAsRead(context.Background(), "a"))
	require.NoError(t, s.Delete(context.Background(), "c"))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, 0, seen[len(seen)-1])
}

func TestStore_MutacionesConcurrentesNoCorrompenElContador(t *testing.T) {
	s, _, _ := loadedStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _ = s.MarkAsRead(context.Background(), "a") }()
		go func() { defer wg.Done(); _ = s.MarkAsRead(context.Background(), "c") }()
	}
	wg.Wait()

	assert.Zero(t, s.UnreadCount())
}
