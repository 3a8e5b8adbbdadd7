package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/inventory"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// ProductHandler expone el estado de stock de los productos.
type ProductHandler struct {
	uc *inventory.StatusUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.StatusUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// ListStatus godoc
// @Summary      Productos con su estado de stock
// @Description  Ordenados por urgencia (agotado, reabastecer, en stock) y nombre.
//               El resumen cubre siempre todo el inventario.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "in_stock | restock | out_of_stock"
// @Success      200  {object}  dto.ProductStatusListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/status [get]
func (h *ProductHandler) ListStatus(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), entity.StockStatus(c.Query("status")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStatus godoc
// @Summary      Estado de stock de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStatusDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/status [get]
func (h *ProductHandler) GetStatus(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
