package repository

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// ActivityLogRepository puerto append-only del log de auditoría.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *entity.ActivityLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]entity.ActivityLogEntry, error)
}
