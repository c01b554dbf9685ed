package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una compra con sus líneas.
type ReceiptUseCase struct {
	appName      string
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.PurchaseItemRepository
	renderer     ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	appName string,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.PurchaseItemRepository,
	renderer ReceiptRenderer,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		appName:      appName,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		renderer:     renderer,
	}
}

// Download devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si la compra no existe.
// Un proveedor dado de baja después de la compra se sigue mostrando por su ID.
func (uc *ReceiptUseCase) Download(ctx context.Context, purchaseID string) ([]byte, string, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener compra: %w", err)
	}
	if purchase == nil {
		return nil, "", domain.ErrNotFound
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, purchase.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener proveedor: %w", err)
	}

	items, err := uc.itemRepo.ListByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener líneas: %w", err)
	}

	pdf, err := uc.renderer.RenderPurchaseReceipt(ctx, ReceiptData{
		AppName:  uc.appName,
		Purchase: purchase,
		Supplier: supplier,
		Items:    items,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar PDF: %w", err)
	}

	name := purchase.ID
	if purchase.InvoiceNumber != nil && *purchase.InvoiceNumber != "" {
		name = *purchase.InvoiceNumber
	}
	return pdf, fmt.Sprintf("compra-%s.pdf", name), nil
}
