package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
)

// StockHandler alta, consulta y ajuste manual de stock.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusCreated, "stock creado", out)
}

func (h *StockHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return paginated(c, "listado de stock", page)
}

// ListLow unidades en o por debajo de su stock mínimo.
func (h *StockHandler) ListLow(c *fiber.Ctx) error {
	page, err := h.uc.ListBelowMinimum(c.UserContext(), pageQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return paginated(c, "unidades con stock bajo", page)
}

func (h *StockHandler) GetByProductUnitID(c *fiber.Ctx) error {
	unitID, err := uuidParam(c, "productUnitId")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.GetByProductUnitID(c.UserContext(), unitID)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "stock obtenido", out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Suma quantity_adjustment (puede ser negativo). Rechaza dejar el stock en negativo.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.StockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stocks/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.Adjust(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "stock ajustado", out)
}
