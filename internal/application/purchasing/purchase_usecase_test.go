package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos-api/internal/application/dto"
	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/testutil/memstore"
)

func TestPurchaseUseCase_CRUD(t *testing.T) {
	s := memstore.New()
	sup := s.SeedSupplier("Distribuidora")
	uc := purchasing.NewPurchaseUseCase(s.PurchaseRepo(), s.SupplierRepo(), s.PurchaseItemRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreatePurchaseRequest{SupplierID: sup.ID, InvoiceNumber: ptr("FV-1"), TotalAmount: dec("1500.50")})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdatePurchaseRequest{TotalAmount: ptr(dec("2000"))})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(dec("2000")))
	assert.Equal(t, "FV-1", *updated.InvoiceNumber)

	page, err := uc.List(ctx, dto.PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Total)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseUseCase_ProveedorInexistente(t *testing.T) {
	s := memstore.New()
	uc := purchasing.NewPurchaseUseCase(s.PurchaseRepo(), s.SupplierRepo(), s.PurchaseItemRepo())

	_, err := uc.Create(context.Background(), dto.CreatePurchaseRequest{SupplierID: uuid.NewString()})

	var ref *domain.ReferenceNotFoundError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, "supplier", ref.Entity)
}

func TestPurchaseUseCase_DeleteConLineasEsConflicto(t *testing.T) {
	f := newFixture(t, false)
	f.create(t, f.unit.ID, "1")
	uc := purchasing.NewPurchaseUseCase(f.store.PurchaseRepo(), f.store.SupplierRepo(), f.store.PurchaseItemRepo())

	err := uc.Delete(context.Background(), f.purchase.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ── Comprobante ───────────────────────────────────────────────────────────────

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) RenderPurchaseReceipt(ctx context.Context, data purchasing.ReceiptData) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestReceiptUseCase_Download(t *testing.T) {
	f := newFixture(t, false)
	f.create(t, f.unit.ID, "2")
	r := new(mockRenderer)
	r.On("RenderPurchaseReceipt", mock.Anything, mock.MatchedBy(func(d purchasing.ReceiptData) bool {
		return d.AppName == "pos" && d.Supplier != nil && len(d.Items) == 1 && d.Items[0].ProductName == "Agua 600ml"
	})).Return([]byte("%PDF-1.3"), nil).Once()
	uc := purchasing.NewReceiptUseCase("pos", f.store.PurchaseRepo(), f.store.SupplierRepo(), f.store.PurchaseItemRepo(), r)

	pdf, name, err := uc.Download(context.Background(), f.purchase.ID)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(pdf))
	assert.Equal(t, "compra-"+f.purchase.ID+".pdf", name)
	r.AssertExpectations(t)
}

func TestReceiptUseCase_CompraInexistente(t *testing.T) {
	s := memstore.New()
	r := new(mockRenderer)
	uc := purchasing.NewReceiptUseCase("pos", s.PurchaseRepo(), s.SupplierRepo(), s.PurchaseItemRepo(), r)

	_, _, err := uc.Download(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	r.AssertNotCalled(t, "RenderPurchaseReceipt", mock.Anything, mock.Anything)
}
