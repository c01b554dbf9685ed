package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

// PurchaseItemUseCase mantiene consistentes las líneas de compra y el stock: cada alta,
// modificación o baja de una línea aplica su ajuste de stock en la misma transacción.
type PurchaseItemUseCase struct {
	txRunner     inventory.TxRunner
	ledger       *inventory.Ledger
	itemRepo     repository.PurchaseItemRepository
	purchaseRepo repository.PurchaseRepository
	unitRepo     repository.ProductUnitRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

// NewPurchaseItemUseCase construye el coordinador inyectando sus dependencias.
func NewPurchaseItemUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	itemRepo repository.PurchaseItemRepository,
	purchaseRepo repository.PurchaseRepository,
	unitRepo repository.ProductUnitRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *PurchaseItemUseCase {
	return &PurchaseItemUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		itemRepo:     itemRepo,
		purchaseRepo: purchaseRepo,
		unitRepo:     unitRepo,
		productRepo:  productRepo,
		log:          log.Component("purchase-items"),
	}
}

// Create valida compra, unidad y producto, y en una transacción inserta la línea y suma
// la cantidad al stock de la unidad. El product_id se deriva siempre de la unidad.
func (uc *PurchaseItemUseCase) Create(ctx context.Context, in dto.CreatePurchaseItemRequest) (*dto.PurchaseItemResponse, error) {
	if err := validateAmounts(&in.Quantity, &in.Price, &in.Subtotal); err != nil {
		return nil, err
	}
	if err := uc.requirePurchase(ctx, in.PurchaseID); err != nil {
		return nil, err
	}
	unit, product, err := uc.resolveUnit(ctx, in.ProductUnitID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.PurchaseItem{
		ID:            uuid.New().String(),
		PurchaseID:    in.PurchaseID,
		ProductID:     unit.ProductID,
		ProductUnitID: unit.ID,
		Quantity:      in.Quantity,
		Price:         in.Price,
		Subtotal:      in.Subtotal,
		CreatedAt:     now,
		UpdatedAt:     now,
		ProductName:   product.Name,
		UnitName:      unit.UnitName,
	}

	var results []*inventory.AdjustResult
	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepositories) error {
		if err := repos.PurchaseItems.Create(ctx, item); err != nil {
			return err
		}
		var adjErr error
		results, adjErr = uc.applyDeltas(ctx, repos.Stocks, invdomain.CreateDeltas(item.ProductUnitID, item.Quantity))
		return adjErr
	})
	if err != nil {
		uc.log.Error().Err(err).Str("purchase_id", in.PurchaseID).Str("product_unit_id", in.ProductUnitID).
			Msg("alta de línea de compra revertida")
		return nil, err
	}
	uc.logReconciled("create", item.ID, results)
	return toPurchaseItemResponse(item), nil
}

// Update aplica una actualización parcial. Los ajustes de stock se calculan contra la
// cantidad y unidad previas, leídas con la línea bloqueada dentro de la transacción.
func (uc *PurchaseItemUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseItemRequest) (*dto.PurchaseItemResponse, error) {
	if err := validateAmounts(in.Quantity, in.Price, in.Subtotal); err != nil {
		return nil, err
	}
	existing, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if in.PurchaseID != nil {
		if err := uc.requirePurchase(ctx, *in.PurchaseID); err != nil {
			return nil, err
		}
	}
	var newUnit *entity.ProductUnit
	var newProduct *entity.Product
	if in.ProductUnitID != nil {
		newUnit, newProduct, err = uc.resolveUnit(ctx, *in.ProductUnitID)
		if err != nil {
			return nil, err
		}
	}

	var (
		item    *entity.PurchaseItem
		results []*inventory.AdjustResult
	)
	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepositories) error {
		locked, err := repos.PurchaseItems.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// Foto previa: los deltas se calculan contra estos valores, no contra el estado nuevo
		oldUnitID, oldQty := locked.ProductUnitID, locked.Quantity

		if in.PurchaseID != nil {
			locked.PurchaseID = *in.PurchaseID
		}
		if newUnit != nil {
			locked.ProductUnitID = newUnit.ID
			locked.ProductID = newUnit.ProductID
			locked.UnitName = newUnit.UnitName
			locked.ProductName = newProduct.Name
		}
		if in.Quantity != nil {
			locked.Quantity = *in.Quantity
		}
		if in.Price != nil {
			locked.Price = *in.Price
		}
		if in.Subtotal != nil {
			locked.Subtotal = *in.Subtotal
		}
		locked.UpdatedAt = time.Now()

		if err := repos.PurchaseItems.Update(ctx, locked); err != nil {
			return err
		}
		deltas := invdomain.UpdateDeltas(oldUnitID, oldQty, locked.ProductUnitID, locked.Quantity)
		results, err = uc.applyDeltas(ctx, repos.Stocks, deltas)
		if err != nil {
			return err
		}
		item = locked
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("purchase_item_id", id).Msg("actualización de línea de compra revertida")
		return nil, err
	}
	uc.logReconciled("update", item.ID, results)
	return toPurchaseItemResponse(item), nil
}

// Delete resta la cantidad de la línea al stock de su unidad y elimina la línea, en la misma transacción.
func (uc *PurchaseItemUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	var results []*inventory.AdjustResult
	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepositories) error {
		locked, err := repos.PurchaseItems.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		results, err = uc.applyDeltas(ctx, repos.Stocks, invdomain.DeleteDeltas(locked.ProductUnitID, locked.Quantity))
		if err != nil {
			return err
		}
		return repos.PurchaseItems.Delete(ctx, id)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("purchase_item_id", id).Msg("baja de línea de compra revertida")
		return err
	}
	uc.logReconciled("delete", id, results)
	return nil
}

// GetByID obtiene una línea con nombres de producto y unidad.
func (uc *PurchaseItemUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseItemResponse(item), nil
}

// List lista líneas paginadas, opcionalmente filtradas por compra.
func (uc *PurchaseItemUseCase) List(ctx context.Context, purchaseID string, q dto.PageQuery) (*dto.Page[dto.PurchaseItemResponse], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	list, total, err := uc.itemRepo.List(ctx, purchaseID, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.PurchaseItemResponse]{Items: toPurchaseItemResponses(list), Meta: dto.NewPageMeta(q, total)}, nil
}

// ListByPurchase lista todas las líneas de una compra existente.
func (uc *PurchaseItemUseCase) ListByPurchase(ctx context.Context, purchaseID string) ([]dto.PurchaseItemResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.itemRepo.ListByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return toPurchaseItemResponses(list), nil
}

func (uc *PurchaseItemUseCase) applyDeltas(ctx context.Context, stocks repository.StockRepository, deltas []invdomain.StockDelta) ([]*inventory.AdjustResult, error) {
	results := make([]*inventory.AdjustResult, 0, len(deltas))
	for _, d := range deltas {
		res, err := uc.ledger.AdjustForPurchase(ctx, stocks, d)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (uc *PurchaseItemUseCase) requirePurchase(ctx context.Context, purchaseID string) error {
	p, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NewReferenceNotFound("purchase", purchaseID)
	}
	return nil
}

// resolveUnit carga la unidad y su producto; ambos deben existir.
func (uc *PurchaseItemUseCase) resolveUnit(ctx context.Context, unitID string) (*entity.ProductUnit, *entity.Product, error) {
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, nil, err
	}
	if unit == nil {
		return nil, nil, domain.NewReferenceNotFound("productUnit", unitID)
	}
	product, err := uc.productRepo.GetByID(ctx, unit.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.NewReferenceNotFound("product", unit.ProductID)
	}
	return unit, product, nil
}

func (uc *PurchaseItemUseCase) logReconciled(op, itemID string, results []*inventory.AdjustResult) {
	for _, r := range results {
		ev := uc.log.Info().
			Str("op", op).
			Str("purchase_item_id", itemID).
			Str("product_unit_id", r.ProductUnitID).
			Bool("tracked", r.Tracked)
		if r.Tracked {
			ev = ev.Str("previous", r.Previous.String()).Str("quantity", r.Quantity.String())
		}
		ev.Msg("stock conciliado")
	}
}
