package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/notification"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// NotificationHandler bandeja de notificaciones.
type NotificationHandler struct {
	uc  *usecase.NotificationUseCase
	now func() time.Time
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc, now: time.Now}
}

// List godoc
// @Summary      Listar notificaciones (más recientes primero)
// @Description  Siempre responde un arreglo JSON; cada elemento incluye time_ago.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. notificaciones (default 100)"
// @Success      200  {array}   dto.NotificationDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var req dto.LimitRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	items, err := h.uc.ListLimit(c.UserContext(), req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(notification.ToDTOs(items, h.now()))
}

// UnreadCount godoc
// @Summary      Número de notificaciones no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UnreadCountDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.uc.UnreadCount(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UnreadCountDTO{Count: count})
}

// Create godoc
// @Summary      Crear notificación
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "title requerido; type y severity opcionales"
// @Success      201  {object}  dto.NotificationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	n, err := h.uc.Create(c.UserContext(), entity.NotificationRequest{
		Title:             in.Title,
		Message:           in.Message,
		Type:              entity.NotificationType(in.Type),
		Severity:          entity.Severity(in.Severity),
		RelatedEntityType: in.RelatedEntityType,
		RelatedEntityID:   in.RelatedEntityID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notification.ToDTO(*n, h.now()))
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(notification.ToDTO(*n, h.now()))
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
