package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/usecase"
)

// ProductUnitHandler unidades de medida de un producto y sus precios.
type ProductUnitHandler struct {
	units  *usecase.ProductUnitUseCase
	prices *usecase.UnitPriceUseCase
}

// NewProductUnitHandler construye el handler.
func NewProductUnitHandler(units *usecase.ProductUnitUseCase, prices *usecase.UnitPriceUseCase) *ProductUnitHandler {
	return &ProductUnitHandler{units: units, prices: prices}
}

// Create godoc
// @Summary      Agregar unidad a un producto
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.CreateProductUnitRequest  true  "Unidad"
// @Success      201   {object}  dto.ProductUnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/units [post]
func (h *ProductUnitHandler) Create(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.CreateProductUnitRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.units.Create(c.UserContext(), productID, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusCreated, "unidad creada", out)
}

func (h *ProductUnitHandler) ListByProduct(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.units.ListByProduct(c.UserContext(), productID)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "unidades del producto", out)
}

func (h *ProductUnitHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "unitId")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.units.GetByID(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "unidad obtenida", out)
}

func (h *ProductUnitHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "unitId")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.UpdateProductUnitRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.units.Update(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "unidad actualizada", out)
}

func (h *ProductUnitHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "unitId")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.units.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "unidad eliminada", nil)
}

// ── Precios ───────────────────────────────────────────────────────────────────

// CreatePrice godoc
// @Summary      Agregar precio a una unidad
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.CreateUnitPriceRequest  true  "Precio"
// @Success      201   {object}  dto.UnitPriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units/{id}/prices [post]
func (h *ProductUnitHandler) CreatePrice(c *fiber.Ctx) error {
	unitID, err := uuidParam(c, "unitId")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.CreateUnitPriceRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.prices.Create(c.UserContext(), unitID, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusCreated, "precio creado", out)
}

func (h *ProductUnitHandler) ListPrices(c *fiber.Ctx) error {
	unitID, err := uuidParam(c, "unitId")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.prices.ListByUnit(c.UserContext(), unitID)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "precios de la unidad", out)
}

func (h *ProductUnitHandler) UpdatePrice(c *fiber.Ctx) error {
	id, err := uuidParam(c, "priceId")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.UpdateUnitPriceRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.prices.Update(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "precio actualizado", out)
}

func (h *ProductUnitHandler) DeletePrice(c *fiber.Ctx) error {
	id, err := uuidParam(c, "priceId")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.prices.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "precio eliminado", nil)
}
