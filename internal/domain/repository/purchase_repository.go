package repository

import (
	"context"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para la cabecera de compra.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	Update(ctx context.Context, p *entity.Purchase) error
	List(ctx context.Context, limit, offset int) ([]*entity.Purchase, int, error)
	// Delete borra la compra; domain.ErrConflict si aún tiene líneas.
	Delete(ctx context.Context, id string) error
}

// PurchaseItemRepository define el puerto de persistencia para las líneas de compra.
// Las lecturas completan ProductName y UnitName.
type PurchaseItemRepository interface {
	Create(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseItem, error)
	// GetByIDForUpdate bloquea la línea hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseItem, error)
	Update(ctx context.Context, item *entity.PurchaseItem) error
	Delete(ctx context.Context, id string) error
	// List filtra por compra cuando purchaseID no está vacío.
	List(ctx context.Context, purchaseID string, limit, offset int) ([]*entity.PurchaseItem, int, error)
	ListByPurchaseID(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
	CountByPurchaseID(ctx context.Context, purchaseID string) (int, error)
}
