package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
)

// ok responde con el sobre estándar de éxito.
func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: status,
	})
}

// paginated responde un listado con sus metadatos de página.
func paginated[T any](c *fiber.Ctx, message string, page *dto.Page[T]) error {
	return c.Status(fiber.StatusOK).JSON(dto.PaginatedResponse{
		Success:    true,
		Message:    message,
		Data:       page.Items,
		Meta:       page.Meta,
		StatusCode: fiber.StatusOK,
	})
}

// fail responde con el sobre estándar de error.
func fail(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Success: false,
		Error: dto.ErrorBody{
			StatusCode: status,
			Code:       code,
			Message:    message,
			Details:    details,
		},
		Timestamp: time.Now().UTC(),
		Path:      c.Path(),
	})
}

// errorStatus traduce un error de dominio a (status, code). Lo desconocido es 500.
func errorStatus(err error) (int, string) {
	var ref *domain.ReferenceNotFoundError
	switch {
	case errors.As(err, &ref):
		return fiber.StatusBadRequest, "REFERENCE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrStockNotTracked):
		return fiber.StatusConflict, "STOCK_NOT_TRACKED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrLockTimeout):
		return fiber.StatusServiceUnavailable, "LOCK_TIMEOUT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// handleError responde el error de un caso de uso. Los 500 no exponen el detalle interno.
func handleError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return fail(c, status, code, "error interno del servidor", nil)
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fail(c, status, code, "validación fallida", verr.Fields)
	}
	return fail(c, status, code, err.Error(), nil)
}

// ErrorHandler para fiber.Config: errores no manejados (404 de ruta, 405, pánicos recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return fail(c, fe.Code, code, fe.Message, nil)
	}
	return handleError(c, err)
}
