package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-insights/internal/application/notification"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/mocks"
)

func TestNotificationCreate_ValoresPorDefectoYValidacion(t *testing.T) {
	repo := mocks.NewNotificationRepo()
	uc := usecase.NewNotificationUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	n, err := uc.Create(ctx, entity.NotificationRequest{Title: "  Hola  ", Message: "mundo"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Hola", n.Title)
	assert.Equal(t, entity.NotificationGeneral, n.Type)
	assert.Equal(t, entity.SeverityMedium, n.Severity)
	assert.False(t, n.IsRead)

	_, err = uc.Create(ctx, entity.NotificationRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, entity.NotificationRequest{Title: "x", Type: "spam"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, entity.NotificationRequest{Title: "x", Severity: "urgente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Len(t, repo.Snapshot(), 1)
}

func TestNotificationMarkReadYDelete_NoEncontrado(t *testing.T) {
	uc := usecase.NewNotificationUseCase(mocks.NewNotificationRepo(), zerolog.Nop())

	_, err := uc.MarkRead(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}

// El store funciona en proceso contra el caso de uso del servidor.
func TestNotificationUseCase_ComoTransporteDelStore(t *testing.T) {
	now := time.Now()
	repo := mocks.NewNotificationRepo(
		entity.Notification{ID: "a", Title: "A", Type: entity.NotificationGeneral, Severity: entity.SeverityMedium, CreatedAt: now},
		entity.Notification{ID: "b", Title: "B", Type: entity.NotificationGeneral, Severity: entity.SeverityMedium, CreatedAt: now.Add(-time.Hour), IsRead: true},
		entity.Notification{ID: "c", Title: "C", Type: entity.NotificationGeneral, Severity: entity.SeverityMedium, CreatedAt: now.Add(-2 * time.Hour)},
	)
	uc := usecase.NewNotificationUseCase(repo, zerolog.Nop())
	store := notification.NewStore(uc, nil, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.RefreshList(ctx))
	assert.Equal(t, 2, store.UnreadCount())

	require.NoError(t, store.MarkAsRead(ctx, "a"))
	require.NoError(t, store.RefreshUnreadCount(ctx))
	assert.Equal(t, 1, store.UnreadCount())

	require.NoError(t, store.Delete(ctx, "c"))
	assert.Zero(t, store.UnreadCount())
	assert.Len(t, repo.Snapshot(), 2)

	require.NoError(t, store.MarkAllAsRead(ctx))
	count, err := uc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationUnreadCount_CoincideConLaBandejaVisible(t *testing.T) {
	now := time.Now()
	var seed []entity.Notification
	for i := 0; i < usecase.DefaultNotificationListLimit+3; i++ {
		seed = append(seed, entity.Notification{
			ID: fmt.Sprintf("n-%d", i), Title: "N", Type: entity.NotificationGeneral, Severity: entity.SeverityMedium,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
			IsRead:    i < usecase.DefaultNotificationListLimit-1,
		})
	}
	uc := usecase.NewNotificationUseCase(mocks.NewNotificationRepo(seed...), zerolog.Nop())
	ctx := context.Background()

	items, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, usecase.DefaultNotificationListLimit)
	visibleUnread := 0
	for _, n := range items {
		if !n.IsRead {
			visibleUnread++
		}
	}

	count, err := uc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, visibleUnread, count)
}

func TestActivityUseCase_AppendYListRecent(t *testing.T) {
	repo := &mocks.ActivityLogRepo{}
	uc := usecase.NewActivityUseCase(repo)
	ctx := context.Background()

	for _, action := range []string{"uno", "dos", "tres"} {
		require.NoError(t, uc.Append(ctx, &entity.ActivityLogEntry{Action: action}))
	}

	entries := repo.Snapshot()
	require.Len(t, entries, 3)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Equal(t, entity.UnknownActor.Username, entries[0].Username)

	recent, err := uc.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "tres", recent[0].Action)
}
