package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

// PurchaseUseCase casos de uso de la cabecera de compra.
type PurchaseUseCase struct {
	repo         repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.PurchaseItemRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	repo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.PurchaseItemRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo, supplierRepo: supplierRepo, itemRepo: itemRepo}
}

// Create registra una compra de un proveedor existente.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !invdomain.HasValidScale(in.TotalAmount) {
		return nil, domain.NewValidationError("total_amount", "max 2 decimales")
	}
	if err := uc.requireSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Purchase{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		InvoiceNumber: in.InvoiceNumber,
		TotalAmount:   in.TotalAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// GetByID obtiene una compra.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// List lista compras, las más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, q dto.PageQuery) (*dto.Page[dto.PurchaseResponse], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.Page[dto.PurchaseResponse]{Items: items, Meta: dto.NewPageMeta(q, total)}, nil
}

// Update actualiza campos de cabecera; no toca stock.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != nil {
		if err := uc.requireSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		p.SupplierID = *in.SupplierID
	}
	if in.InvoiceNumber != nil {
		p.InvoiceNumber = in.InvoiceNumber
	}
	if in.TotalAmount != nil {
		if !invdomain.HasValidScale(*in.TotalAmount) {
			return nil, domain.NewValidationError("total_amount", "max 2 decimales")
		}
		p.TotalAmount = *in.TotalAmount
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// Delete elimina la compra. Con líneas vivas devuelve domain.ErrConflict: las líneas se
// eliminan primero por PurchaseItemUseCase para revertir su stock.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	n, err := uc.itemRepo.CountByPurchaseID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la compra tiene %d líneas", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PurchaseUseCase) requireSupplier(ctx context.Context, supplierID string) error {
	s, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewReferenceNotFound("supplier", supplierID)
	}
	return nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		InvoiceNumber: p.InvoiceNumber,
		TotalAmount:   p.TotalAmount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
