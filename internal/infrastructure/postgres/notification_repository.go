package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo bandeja de notificaciones sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

const notificationColumns = `id, title, message, type, severity, is_read, created_at,
	COALESCE(related_entity_type, ''), COALESCE(related_entity_id, '')`

// Create persiste una notificación nueva.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, type, severity, is_read, created_at, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.Title, n.Message, string(n.Type), string(n.Severity), n.IsRead, n.CreatedAt,
		n.RelatedEntityType, n.RelatedEntityID,
	)
	if err != nil {
		return wrap("create_notification", fmt.Errorf("insert notification: %w", err))
	}
	return nil
}

// GetByID obtiene una notificación; nil, nil si no existe.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	n, err := scanNotification(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("get_notification", fmt.Errorf("get notification: %w", err))
	}
	return n, nil
}

// List más recientes primero.
func (r *NotificationRepo) List(ctx context.Context, limit int) ([]entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY created_at DESC, id LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, wrap("list_notifications", fmt.Errorf("list notifications: %w", err))
	}
	defer rows.Close()

	list := make([]entity.Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, wrap("list_notifications", fmt.Errorf("scan notification: %w", err))
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list_notifications", err)
	}
	return list, nil
}

// CountUnread cuenta las no leídas dentro de la misma ventana que List.
func (r *NotificationRepo) CountUnread(ctx context.Context, limit int) (int, error) {
	var count int
	var err error
	if limit > 0 {
		err = r.q.QueryRow(ctx, `
			SELECT COUNT(*) FROM (
				SELECT is_read FROM notifications ORDER BY created_at DESC, id LIMIT $1
			) AS visible WHERE NOT visible.is_read`, limit).Scan(&count)
	} else {
		err = r.q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&count)
	}
	if err != nil {
		return 0, wrap("unread_count", fmt.Errorf("count unread: %w", err))
	}
	return count, nil
}

// MarkRead marca como leída y devuelve la fila; nil, nil si no existe.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 RETURNING ` + notificationColumns
	n, err := scanNotification(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrap("mark_read", fmt.Errorf("mark read: %w", err))
	}
	return n, nil
}

// MarkAllRead marca todas y devuelve cuántas cambiaron.
func (r *NotificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE NOT is_read`)
	if err != nil {
		return 0, wrap("mark_all_read", fmt.Errorf("mark all read: %w", err))
	}
	return tag.RowsAffected(), nil
}

// Delete elimina la notificación; domain.ErrNotFound si no existe.
func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return wrap("delete_notification", fmt.Errorf("delete notification: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	var typ, severity string
	err := row.Scan(
		&n.ID, &n.Title, &n.Message, &typ, &severity, &n.IsRead, &n.CreatedAt,
		&n.RelatedEntityType, &n.RelatedEntityID,
	)
	if err != nil {
		return nil, err
	}
	n.Type = entity.NotificationType(typ)
	n.Severity = entity.Severity(severity)
	return &n, nil
}
