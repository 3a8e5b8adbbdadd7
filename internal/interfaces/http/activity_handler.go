package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
)

// ActivityHandler consulta del log de auditoría.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Últimas entradas del log de auditoría
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. entradas (default 50, max 500)"
// @Success      200  {array}   dto.ActivityLogDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var req dto.LimitRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	out, err := h.uc.ListRecent(c.UserContext(), req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
