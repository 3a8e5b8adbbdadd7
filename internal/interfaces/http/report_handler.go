package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/analytics"
)

// ReportHandler descarga de reportes.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	doc, err := h.uc.SalesPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(doc)
}
