package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// ActivityUseCase log de auditoría: escritura (correlador) y consulta (GET /api/activity).
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
	now  func() time.Time
}

var _ ports.AuditLog = (*ActivityUseCase)(nil)

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, now: time.Now}
}

// Append asigna ID y fecha (si falta) y persiste la entrada.
func (uc *ActivityUseCase) Append(ctx context.Context, entry *entity.ActivityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = uc.now()
	}
	if entry.Username == "" {
		entry.Username = entity.UnknownActor.Username
	}
	return uc.repo.Append(ctx, entry)
}

// ListRecent devuelve las últimas entradas, más recientes primero.
func (uc *ActivityUseCase) ListRecent(ctx context.Context, limit int) ([]dto.ActivityLogDTO, error) {
	req := dto.LimitRequest{Limit: limit}
	entries, err := uc.repo.ListRecent(ctx, req.Normalize(DefaultActivityLimit, MaxActivityLimit))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityLogDTO{
			ID:        e.ID,
			Username:  e.Username,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
