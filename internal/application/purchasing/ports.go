package purchasing

import (
	"context"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

// ReceiptData datos necesarios para renderizar el comprobante de una compra.
type ReceiptData struct {
	AppName  string
	Purchase *entity.Purchase
	Supplier *entity.Supplier
	Items    []*entity.PurchaseItem
}

// ReceiptRenderer genera el PDF del comprobante de compra.
type ReceiptRenderer interface {
	RenderPurchaseReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
