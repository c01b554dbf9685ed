package purchasing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	invdomain "github.com/jhoicas/inventario-pos-api/internal/domain/inventory"
)

// validateAmounts exige cantidad > 0, precio y subtotal >= 0, todos con máximo 2 decimales.
// Los punteros nil no se validan (actualización parcial).
func validateAmounts(quantity, price, subtotal *decimal.Decimal) error {
	fields := map[string]string{}
	if quantity != nil && (!quantity.IsPositive() || !invdomain.HasValidScale(*quantity)) {
		fields["quantity"] = "gt=0, max 2 decimales"
	}
	if price != nil && (price.IsNegative() || !invdomain.HasValidScale(*price)) {
		fields["price"] = "gte=0, max 2 decimales"
	}
	if subtotal != nil && (subtotal.IsNegative() || !invdomain.HasValidScale(*subtotal)) {
		fields["subtotal"] = "gte=0, max 2 decimales"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func toPurchaseItemResponse(i *entity.PurchaseItem) *dto.PurchaseItemResponse {
	return &dto.PurchaseItemResponse{
		ID:              i.ID,
		PurchaseID:      i.PurchaseID,
		ProductID:       i.ProductID,
		ProductUnitID:   i.ProductUnitID,
		ProductName:     i.ProductName,
		ProductUnitName: i.UnitName,
		Quantity:        i.Quantity,
		Price:           i.Price,
		Subtotal:        i.Subtotal,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func toPurchaseItemResponses(list []*entity.PurchaseItem) []dto.PurchaseItemResponse {
	out := make([]dto.PurchaseItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *toPurchaseItemResponse(i))
	}
	return out
}
