package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain"
)

// writeError traduce errores de dominio a status HTTP y dto.ErrorResponse.
// Un backend caído es 502: nunca se reporta como fallo de autenticación.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrMalformedResponse):
		status, code = fiber.StatusBadGateway, "MALFORMED_RESPONSE"
	case errors.Is(err, domain.ErrTransport):
		status, code = fiber.StatusBadGateway, "BACKEND_UNAVAILABLE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
}
