package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo log de auditoría append-only sobre PostgreSQL.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append inserta una entrada.
func (r *ActivityLogRepo) Append(ctx context.Context, e *entity.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (id, user_id, username, action, details, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.UserID, e.Username, e.Action, e.Details, e.CreatedAt); err != nil {
		return wrap("append_activity", fmt.Errorf("insert activity: %w", err))
	}
	return nil
}

// ListRecent las últimas limit entradas, más recientes primero.
func (r *ActivityLogRepo) ListRecent(ctx context.Context, limit int) ([]entity.ActivityLogEntry, error) {
	query := `
		SELECT id, COALESCE(user_id, ''), username, action, details, created_at
		FROM activity_log
		ORDER BY created_at DESC, id
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, wrap("list_activity", fmt.Errorf("list activity: %w", err))
	}
	defer rows.Close()

	list := make([]entity.ActivityLogEntry, 0, limit)
	for rows.Next() {
		var e entity.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, wrap("list_activity", fmt.Errorf("scan activity: %w", err))
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list_activity", err)
	}
	return list, nil
}
