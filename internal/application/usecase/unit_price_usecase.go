package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UnitPriceUseCase precios escalonados por unidad de producto.
type UnitPriceUseCase struct {
	repo     repository.ProductUnitPriceRepository
	unitRepo repository.ProductUnitRepository
}

// NewUnitPriceUseCase construye el caso de uso.
func NewUnitPriceUseCase(repo repository.ProductUnitPriceRepository, unitRepo repository.ProductUnitRepository) *UnitPriceUseCase {
	return &UnitPriceUseCase{repo: repo, unitRepo: unitRepo}
}

// Create agrega un precio a la unidad. start_date no puede ser posterior a end_date.
func (uc *UnitPriceUseCase) Create(ctx context.Context, unitID string, in dto.CreateUnitPriceRequest) (*dto.UnitPriceResponse, error) {
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.IsValidPriceType(in.PriceType) {
		return nil, domain.NewValidationError("price_type", "oneof=RETAIL WHOLESALE MEMBER")
	}
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validatePriceAmounts(in.Price, in.MinimumQty); err != nil {
		return nil, err
	}
	now := time.Now()
	price := &entity.ProductUnitPrice{
		ID:            uuid.New().String(),
		ProductUnitID: unit.ID,
		PriceType:     in.PriceType,
		Price:         in.Price,
		MinimumQty:    in.MinimumQty,
		StartDate:     start,
		EndDate:       end,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, price); err != nil {
		return nil, err
	}
	return toUnitPriceResponse(price), nil
}

// ListByUnit lista los precios vivos de una unidad.
func (uc *UnitPriceUseCase) ListByUnit(ctx context.Context, unitID string) ([]dto.UnitPriceResponse, error) {
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByProductUnitID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitPriceResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toUnitPriceResponse(p))
	}
	return out, nil
}

// Update actualiza un precio. El rango de fechas se valida sobre el resultado combinado.
func (uc *UnitPriceUseCase) Update(ctx context.Context, id string, in dto.UpdateUnitPriceRequest) (*dto.UnitPriceResponse, error) {
	price, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, domain.ErrNotFound
	}
	if in.PriceType != nil {
		if !entity.IsValidPriceType(*in.PriceType) {
			return nil, domain.NewValidationError("price_type", "oneof=RETAIL WHOLESALE MEMBER")
		}
		price.PriceType = *in.PriceType
	}
	if in.Price != nil {
		price.Price = *in.Price
	}
	if in.MinimumQty != nil {
		price.MinimumQty = *in.MinimumQty
	}
	if err := validatePriceAmounts(price.Price, price.MinimumQty); err != nil {
		return nil, err
	}
	startRaw, endRaw := formatDate(price.StartDate), formatDate(price.EndDate)
	if in.StartDate != nil {
		startRaw = in.StartDate
	}
	if in.EndDate != nil {
		endRaw = in.EndDate
	}
	price.StartDate, price.EndDate, err = parseRange(startRaw, endRaw)
	if err != nil {
		return nil, err
	}
	price.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, price); err != nil {
		return nil, err
	}
	return toUnitPriceResponse(price), nil
}

// Delete desactiva el precio (borrado lógico).
func (uc *UnitPriceUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.SoftDelete(ctx, id)
}

func validatePriceAmounts(price, minQty decimal.Decimal) error {
	if price.IsNegative() || !invdomain.HasValidScale(price) {
		return domain.NewValidationError("price", "gte=0, max 2 decimales")
	}
	if minQty.IsNegative() || !invdomain.HasValidScale(minQty) {
		return domain.NewValidationError("minimum_qty", "gte=0, max 2 decimales")
	}
	return nil
}

func parseRange(startRaw, endRaw *string) (*time.Time, *time.Time, error) {
	start, err := parseDate("start_date", startRaw)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate("end_date", endRaw)
	if err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, domain.NewValidationError("start_date", "debe ser anterior o igual a end_date")
	}
	return start, end, nil
}

func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "formato YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func toUnitPriceResponse(p *entity.ProductUnitPrice) *dto.UnitPriceResponse {
	return &dto.UnitPriceResponse{
		ID:            p.ID,
		ProductUnitID: p.ProductUnitID,
		PriceType:     p.PriceType,
		Price:         p.Price,
		MinimumQty:    p.MinimumQty,
		StartDate:     formatDate(p.StartDate),
		EndDate:       formatDate(p.EndDate),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
