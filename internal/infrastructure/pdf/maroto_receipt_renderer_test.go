package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"999.5":      "999,50",
		"25000":      "25.000,00",
		"1000000.05": "1.000.000,05",
		"-1234567.5": "-1.234.567,50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderPurchaseReceipt_GeneraPDF(t *testing.T) {
	invoice := "FV-001"
	data := purchasing.ReceiptData{
		AppName: "Tienda Centro",
		Purchase: &entity.Purchase{
			ID:            "p-1",
			SupplierID:    "s-1",
			InvoiceNumber: &invoice,
			TotalAmount:   decimal.RequireFromString("150000"),
			CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Supplier: &entity.Supplier{ID: "s-1", Name: "Distribuidora Norte", Phone: "3001234567"},
		Items: []*entity.PurchaseItem{
			{
				ID: "i-1", ProductUnitID: "u-1", ProductName: "Agua 600ml", UnitName: entity.UnitPACK,
				Quantity: decimal.RequireFromString("10"), Price: decimal.RequireFromString("12000"),
				Subtotal: decimal.RequireFromString("120000"),
			},
			{
				ID: "i-2", ProductUnitID: "u-2", ProductName: "Arroz 1kg", UnitName: entity.UnitPCS,
				Quantity: decimal.RequireFromString("2.5"), Price: decimal.RequireFromString("12000"),
				Subtotal: decimal.RequireFromString("30000"),
			},
		},
	}

	out, err := NewMarotoReceiptRenderer().RenderPurchaseReceipt(context.Background(), data)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPurchaseReceipt_SinLineasNiProveedor(t *testing.T) {
	data := purchasing.ReceiptData{
		Purchase: &entity.Purchase{ID: "p-2", SupplierID: "s-borrado", CreatedAt: time.Now()},
	}

	out, err := NewMarotoReceiptRenderer().RenderPurchaseReceipt(context.Background(), data)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPurchaseReceipt_SinCompra(t *testing.T) {
	_, err := NewMarotoReceiptRenderer().RenderPurchaseReceipt(context.Background(), purchasing.ReceiptData{})
	assert.Error(t, err)
}
