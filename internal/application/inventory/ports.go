package inventory

import (
	"context"

	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

// TxRepositories repositorios atados a una misma transacción.
type TxRepositories struct {
	Stocks        repository.StockRepository
	PurchaseItems repository.PurchaseItemRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y el error se propaga sin cambios; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepositories) error) error
}
