package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/analytics"
	"github.com/jhoicas/inventario-insights/internal/application/dto"
)

// AnalyticsHandler maneja los endpoints de analítica de ventas.
type AnalyticsHandler struct {
	uc *analytics.SalesAnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.SalesAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Overview godoc
// @Summary      Resumen de ventas del dashboard
// @Description  Rollup mensual de 12 meses, productos más vendidos y ventas recientes,
//               calculados a partir de una sola lectura del log de movimientos.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesOverviewDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/overview [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.GetOverview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Unidades vendidas por mes (ventana móvil de 12 meses)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MonthlySalesDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/monthly [get]
func (h *AnalyticsHandler) Monthly(c *fiber.Ctx) error {
	out, err := h.uc.GetMonthly(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Top godoc
// @Summary      Productos más vendidos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. productos (default 5, max 50)"
// @Success      200  {array}   dto.TopSellerDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/top [get]
func (h *AnalyticsHandler) Top(c *fiber.Ctx) error {
	var req dto.LimitRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	out, err := h.uc.GetTopSellers(c.UserContext(), req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Ventas más recientes
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. ventas (default 5, max 50)"
// @Success      200  {array}   dto.RecentTransactionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/recent [get]
func (h *AnalyticsHandler) Recent(c *fiber.Ctx) error {
	var req dto.LimitRequest
	if err := c.QueryParser(&req); err != nil {
		return badParams(c)
	}
	out, err := h.uc.GetRecent(c.UserContext(), req.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
