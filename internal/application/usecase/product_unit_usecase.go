package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

// ProductUnitUseCase unidades de medida de un producto. El nombre de unidad es único por producto.
type ProductUnitUseCase struct {
	repo        repository.ProductUnitRepository
	productRepo repository.ProductRepository
}

// NewProductUnitUseCase construye el caso de uso.
func NewProductUnitUseCase(repo repository.ProductUnitRepository, productRepo repository.ProductRepository) *ProductUnitUseCase {
	return &ProductUnitUseCase{repo: repo, productRepo: productRepo}
}

// Create agrega una unidad al producto.
func (uc *ProductUnitUseCase) Create(ctx context.Context, productID string, in dto.CreateProductUnitRequest) (*dto.ProductUnitResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if !entity.IsValidUnitName(in.UnitName) {
		return nil, domain.NewValidationError("unit_name", "oneof=PCS PACK SLOP BOX DUS")
	}
	if !in.ConversionToBase.IsPositive() || !invdomain.HasValidScale(in.ConversionToBase) {
		return nil, domain.NewValidationError("conversion_to_base", "gt=0, max 2 decimales")
	}
	if err := uc.requireFreeUnitName(ctx, productID, in.UnitName, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	unit := &entity.ProductUnit{
		ID:               uuid.New().String(),
		ProductID:        productID,
		UnitName:         in.UnitName,
		Barcode:          in.Barcode,
		ConversionToBase: in.ConversionToBase,
		IsBaseUnit:       in.IsBaseUnit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return toProductUnitResponse(unit), nil
}

// ListByProduct lista las unidades vivas de un producto.
func (uc *ProductUnitUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.ProductUnitResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductUnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toProductUnitResponse(u))
	}
	return out, nil
}

// GetByID obtiene una unidad.
func (uc *ProductUnitUseCase) GetByID(ctx context.Context, id string) (*dto.ProductUnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return toProductUnitResponse(unit), nil
}

// Update actualiza una unidad.
func (uc *ProductUnitUseCase) Update(ctx context.Context, id string, in dto.UpdateProductUnitRequest) (*dto.ProductUnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if in.UnitName != nil && *in.UnitName != unit.UnitName {
		if !entity.IsValidUnitName(*in.UnitName) {
			return nil, domain.NewValidationError("unit_name", "oneof=PCS PACK SLOP BOX DUS")
		}
		if err := uc.requireFreeUnitName(ctx, unit.ProductID, *in.UnitName, unit.ID); err != nil {
			return nil, err
		}
		unit.UnitName = *in.UnitName
	}
	if in.Barcode != nil {
		unit.Barcode = *in.Barcode
	}
	if in.ConversionToBase != nil {
		if !in.ConversionToBase.IsPositive() || !invdomain.HasValidScale(*in.ConversionToBase) {
			return nil, domain.NewValidationError("conversion_to_base", "gt=0, max 2 decimales")
		}
		unit.ConversionToBase = *in.ConversionToBase
	}
	if in.IsBaseUnit != nil {
		unit.IsBaseUnit = *in.IsBaseUnit
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return toProductUnitResponse(unit), nil
}

// Delete marca la unidad como eliminada. Su fila de stock y sus líneas de compra se conservan.
func (uc *ProductUnitUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *ProductUnitUseCase) requireProduct(ctx context.Context, productID string) error {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ProductUnitUseCase) requireFreeUnitName(ctx context.Context, productID, unitName, selfID string) error {
	existing, err := uc.repo.GetByProductAndUnitName(ctx, productID, unitName)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func toProductUnitResponse(u *entity.ProductUnit) *dto.ProductUnitResponse {
	return &dto.ProductUnitResponse{
		ID:               u.ID,
		ProductID:        u.ProductID,
		UnitName:         u.UnitName,
		Barcode:          u.Barcode,
		ConversionToBase: u.ConversionToBase,
		IsBaseUnit:       u.IsBaseUnit,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
