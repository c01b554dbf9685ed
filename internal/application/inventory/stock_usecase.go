package inventory

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
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

// StockUseCase alta, consulta y ajuste manual de stock.
type StockUseCase struct {
	txRunner  TxRunner
	ledger    *Ledger
	stockRepo repository.StockRepository
	unitRepo  repository.ProductUnitRepository
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	ledger *Ledger,
	stockRepo repository.StockRepository,
	unitRepo repository.ProductUnitRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		stockRepo: stockRepo,
		unitRepo:  unitRepo,
		log:       log.Component("stock"),
	}
}

// Create provisiona la fila de stock de una unidad. El producto se deriva de la unidad;
// una segunda fila para la misma unidad devuelve domain.ErrDuplicate.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if !invdomain.HasValidScale(in.Quantity) || !invdomain.HasValidScale(in.MinimumStock) {
		return nil, domain.NewValidationError("quantity", "max 2 decimales")
	}
	unit, err := uc.unitRepo.GetByID(ctx, in.ProductUnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.NewReferenceNotFound("productUnit", in.ProductUnitID)
	}

	now := time.Now()
	stock := &entity.Stock{
		ID:            uuid.New().String(),
		ProductID:     unit.ProductID,
		ProductUnitID: unit.ID,
		Quantity:      in.Quantity,
		MinimumStock:  in.MinimumStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.stockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_unit_id", unit.ID).Str("quantity", stock.Quantity.String()).Msg("stock provisionado")
	return toStockResponse(stock), nil
}

// GetByProductUnitID obtiene el stock de una unidad.
func (uc *StockUseCase) GetByProductUnitID(ctx context.Context, productUnitID string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.GetByProductUnitID(ctx, productUnitID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(stock), nil
}

// List lista el stock paginado.
func (uc *StockUseCase) List(ctx context.Context, q dto.PageQuery) (*dto.Page[dto.StockResponse], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.stockRepo.List(ctx, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	return toStockPage(list, total, q), nil
}

// ListBelowMinimum lista las unidades con cantidad en o por debajo de su mínimo.
func (uc *StockUseCase) ListBelowMinimum(ctx context.Context, q dto.PageQuery) (*dto.Page[dto.StockResponse], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.stockRepo.ListBelowMinimum(ctx, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	return toStockPage(list, total, q), nil
}

// Adjust ajuste manual: inicia transacción, bloquea la fila y rechaza cantidades negativas.
func (uc *StockUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if !invdomain.HasValidScale(in.QuantityAdjustment) {
		return nil, domain.NewValidationError("quantity_adjustment", "max 2 decimales")
	}

	var res *AdjustResult
	err := uc.txRunner.Run(ctx, func(repos TxRepositories) error {
		var err error
		res, err = uc.ledger.AdjustManual(ctx, repos.Stocks, invdomain.StockDelta{
			ProductUnitID: in.ProductUnitID,
			Delta:         in.QuantityAdjustment,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_unit_id", in.ProductUnitID).
		Str("previous", res.Previous.String()).
		Str("quantity", res.Quantity.String()).
		Msg("ajuste manual de stock")

	stock, err := uc.stockRepo.GetByProductUnitID(ctx, in.ProductUnitID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("stock de la unidad %s desapareció tras el ajuste", in.ProductUnitID)
	}
	return toStockResponse(stock), nil
}

func toStockPage(list []*entity.Stock, total int, q dto.PageQuery) *dto.Page[dto.StockResponse] {
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.Page[dto.StockResponse]{Items: items, Meta: dto.NewPageMeta(q, total)}
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductUnitID: s.ProductUnitID,
		Quantity:      s.Quantity,
		MinimumStock:  s.MinimumStock,
		BelowMinimum:  s.BelowMinimum(),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
