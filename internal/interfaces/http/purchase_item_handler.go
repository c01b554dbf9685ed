package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
)

// PurchaseItemHandler líneas de compra. Cada alta, cambio o baja ajusta el stock de la unidad.
type PurchaseItemHandler struct {
	uc *purchasing.PurchaseItemUseCase
}

// NewPurchaseItemHandler construye el handler.
func NewPurchaseItemHandler(uc *purchasing.PurchaseItemUseCase) *PurchaseItemHandler {
	return &PurchaseItemHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar línea de compra
// @Description  Inserta la línea y suma la cantidad al stock de la unidad en la misma transacción.
// @Tags         purchase-items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseItemRequest  true  "Línea"
// @Success      201   {object}  dto.PurchaseItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-items [post]
func (h *PurchaseItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseItemRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusCreated, "línea de compra creada", out)
}

// List acepta ?purchaseId= para filtrar por compra.
func (h *PurchaseItemHandler) List(c *fiber.Ctx) error {
	purchaseID := c.Query("purchaseId")
	if purchaseID != "" {
		if _, err := uuidQuery(purchaseID); err != nil {
			return handleError(c, err)
		}
	}
	page, err := h.uc.List(c.UserContext(), purchaseID, pageQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return paginated(c, "listado de líneas de compra", page)
}

func (h *PurchaseItemHandler) ListByPurchase(c *fiber.Ctx) error {
	purchaseID, err := uuidParam(c, "purchaseId")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.ListByPurchase(c.UserContext(), purchaseID)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "líneas de la compra", out)
}

func (h *PurchaseItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "línea de compra obtenida", out)
}

// Update actualización parcial; el stock se concilia contra la línea previa.
func (h *PurchaseItemHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var in dto.UpdatePurchaseItemRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "línea de compra actualizada", out)
}

func (h *PurchaseItemHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, "línea de compra eliminada", nil)
}

func uuidQuery(raw string) (string, error) {
	if err := validate.Var(raw, "uuid"); err != nil {
		return "", domain.NewValidationError("purchaseId", "uuid")
	}
	return raw, nil
}
