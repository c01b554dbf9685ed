package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
)

// catalogService lo que CatalogHandler necesita de un catálogo (usecase.CatalogUseCase).
type catalogService[C, U, R any] interface {
	Create(ctx context.Context, in C) (*R, error)
	GetByID(ctx context.Context, id string) (*R, error)
	List(ctx context.Context, q dto.PageQuery) (*dto.Page[R], error)
	Update(ctx context.Context, id string, in U) (*R, error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler CRUD HTTP genérico para categorías, clientes, proveedores y productos.
type CatalogHandler[C, U, R any] struct {
	svc   catalogService[C, U, R]
	label string
}

// NewCatalogHandler construye el handler; label aparece en los mensajes ("producto").
func NewCatalogHandler[C, U, R any](svc catalogService[C, U, R], label string) *CatalogHandler[C, U, R] {
	return &CatalogHandler[C, U, R]{svc: svc, label: label}
}

// Register monta las rutas estándar en el grupo.
func (h *CatalogHandler[C, U, R]) Register(g fiber.Router) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func (h *CatalogHandler[C, U, R]) Create(c *fiber.Ctx) error {
	var in C
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusCreated, h.label+" creado", out)
}

func (h *CatalogHandler[C, U, R]) GetByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	out, err := h.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, h.label+" obtenido", out)
}

func (h *CatalogHandler[C, U, R]) List(c *fiber.Ctx) error {
	page, err := h.svc.List(c.UserContext(), pageQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return paginated(c, "listado de "+h.label, page)
}

func (h *CatalogHandler[C, U, R]) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var in U
	if err := bindAndValidate(c, &in); err != nil {
		return handleError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, h.label+" actualizado", out)
}

func (h *CatalogHandler[C, U, R]) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.StatusOK, h.label+" eliminado", nil)
}
