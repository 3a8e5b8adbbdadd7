package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

// DefaultNotificationListLimit tamaño de la bandeja devuelta por List.
const DefaultNotificationListLimit = 100

// NotificationUseCase lado servidor de la bandeja. Implementa ports.NotificationTransport,
// de modo que el store de notificaciones puede operar en proceso sin HTTP.
type NotificationUseCase struct {
	repo      repository.NotificationRepository
	listLimit int
	now       func() time.Time
	log       zerolog.Logger
}

var _ ports.NotificationTransport = (*NotificationUseCase)(nil)

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, log zerolog.Logger) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, listLimit: DefaultNotificationListLimit, now: time.Now, log: log}
}

// List devuelve la bandeja, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context) ([]entity.Notification, error) {
	return uc.ListLimit(ctx, uc.listLimit)
}

// ListLimit como List con un límite explícito (1..DefaultNotificationListLimit).
func (uc *NotificationUseCase) ListLimit(ctx context.Context, limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > uc.listLimit {
		limit = uc.listLimit
	}
	items, err := uc.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Notification{}
	}
	return items, nil
}

// UnreadCount número de no leídas entre las que devuelve List, para que el
// contador coincida con la bandeja.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context) (int, error) {
	return uc.repo.CountUnread(ctx, uc.listLimit)
}

// MarkRead marca id como leída. domain.ErrNotFound si no existe.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "requerido"}
	}
	n, err := uc.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

// MarkAllRead marca toda la bandeja como leída.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) error {
	changed, err := uc.repo.MarkAllRead(ctx)
	if err != nil {
		return err
	}
	uc.log.Debug().Int64("changed", changed).Msg("notificaciones marcadas como leídas")
	return nil
}

// Create valida y persiste una notificación nueva (no leída).
// Tipo vacío se toma como general; severidad vacía como medium.
func (uc *NotificationUseCase) Create(ctx context.Context, req entity.NotificationRequest) (*entity.Notification, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if req.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "requerido"}
	}
	if req.Type == "" {
		req.Type = entity.NotificationGeneral
	}
	if !req.Type.Valid() {
		return nil, &domain.ValidationError{Field: "type", Reason: "tipo desconocido"}
	}
	if req.Severity == "" {
		req.Severity = entity.SeverityMedium
	}
	if !req.Severity.Valid() {
		return nil, &domain.ValidationError{Field: "severity", Reason: "severidad desconocida"}
	}

	n := &entity.Notification{
		ID:                uuid.New().String(),
		Title:             req.Title,
		Message:           req.Message,
		Type:              req.Type,
		Severity:          req.Severity,
		IsRead:            false,
		CreatedAt:         uc.now(),
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete elimina id. domain.ErrNotFound si no existe.
func (uc *NotificationUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Reason: "requerido"}
	}
	return uc.repo.Delete(ctx, id)
}
