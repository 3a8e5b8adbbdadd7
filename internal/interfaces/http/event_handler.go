package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// EventHandler recibe los eventos de dominio del sistema de inventario.
type EventHandler struct {
	publisher ports.EventPublisher
	via       string
	now       func() time.Time
}

// NewEventHandler construye el handler. via identifica el destino ("inprocess" o "kafka").
func NewEventHandler(publisher ports.EventPublisher, via string) *EventHandler {
	return &EventHandler{publisher: publisher, via: via, now: time.Now}
}

// Publish godoc
// @Summary      Registrar un evento de dominio
// @Description  El evento se traduce a una entrada de auditoría y, según el tipo,
//               a una notificación. Se atribuye al usuario del token; solo un token
//               de servicio puede indicar otro actor en el cuerpo.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.DomainEvent  true  "evento"
// @Success      202  {object}  dto.EventAcceptedDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Publish(c *fiber.Ctx) error {
	var ev entity.DomainEvent
	if err := c.BodyParser(&ev); err != nil {
		return badBody(c)
	}
	if !ev.Kind.Known() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_EVENT", Message: "tipo de evento desconocido: " + string(ev.Kind),
		})
	}
	// Solo las integraciones (rol service) pueden atribuir el evento a otro usuario.
	if GetRole(c) != entity.RoleService || ev.Actor == nil || ev.Actor.IsUnknown() {
		ev.Actor = &entity.Actor{UserID: GetUserID(c), Username: GetUsername(c)}
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = h.now()
	}

	if err := h.publisher.Publish(c.UserContext(), ev); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.EventAcceptedDTO{Kind: string(ev.Kind), Accepted: true, Via: h.via})
}
