package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/application/purchasing"
	"github.com/jhoicas/inventario-pos-api/internal/application/usecase"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-pos-api/internal/interfaces/http"
	"github.com/jhoicas/inventario-pos-api/internal/testutil/memstore"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeRenderer struct{}

func (fakeRenderer) RenderPurchaseReceipt(context.Context, purchasing.ReceiptData) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// buildTestApp arma la aplicación completa sobre el almacén en memoria.
func buildTestApp(s *memstore.Store, dbPing error) *fiber.App {
	log := logger.Nop()
	ledger := inventory.NewLedger(false, log)
	deps := usecase.CatalogDeps{Log: log}

	app := apphttp.NewApp("inventario-pos-test", log)
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:    usecase.NewCategoryUseCase(s.CategoryRepo(), deps),
		CustomerUC:    usecase.NewCustomerUseCase(s.CustomerRepo(), deps),
		SupplierUC:    usecase.NewSupplierUseCase(s.SupplierRepo(), deps),
		ProductUC:     usecase.NewProductUseCase(s.ProductRepo(), s.CategoryRepo(), deps),
		ProductUnitUC: usecase.NewProductUnitUseCase(s.UnitRepo(), s.ProductRepo()),
		UnitPriceUC:   usecase.NewUnitPriceUseCase(s.PriceRepo(), s.UnitRepo()),
		StockUC:       inventory.NewStockUseCase(s.TxRunner(), ledger, s.StockRepo(), s.UnitRepo(), log),
		PurchaseUC:    purchasing.NewPurchaseUseCase(s.PurchaseRepo(), s.SupplierRepo(), s.PurchaseItemRepo()),
		PurchaseItemUC: purchasing.NewPurchaseItemUseCase(s.TxRunner(), ledger,
			s.PurchaseItemRepo(), s.PurchaseRepo(), s.UnitRepo(), s.ProductRepo(), log),
		ReceiptUC: purchasing.NewReceiptUseCase("pos", s.PurchaseRepo(), s.SupplierRepo(), s.PurchaseItemRepo(), fakeRenderer{}),
		Health: apphttp.NewHealthHandler("inventario-pos-test", map[string]apphttp.Pinger{
			"postgres": pingFunc(func(context.Context) error { return dbPing }),
		}),
	})
	return app
}

// doJSON lanza la petición y decodifica el cuerpo JSON en un mapa.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	s, _ := e["code"].(string)
	return s
}

func qty(t *testing.T, s *memstore.Store, unitID string) string {
	t.Helper()
	return s.Quantity(unitID).StringFixed(2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas de compra ↔ stock
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseItems_FlujoCompletoAjustaStock(t *testing.T) {
	s := memstore.New()
	sup := s.SeedSupplier("Distribuidora")
	p := s.SeedProduct("SKU-1", "Agua 600ml")
	u := s.SeedUnit(p.ID, entity.UnitPCS)
	s.SeedStock(u, "100")
	purchase := s.SeedPurchase(sup.ID)
	app := buildTestApp(s, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/purchase-items", map[string]any{
		"purchase_id": purchase.ID, "product_unit_id": u.ID,
		"quantity": "10", "price": 1200, "subtotal": "12000",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(http.StatusCreated), body["status_code"])
	item := data(body)
	assert.Equal(t, p.ID, item["product_id"])
	assert.Equal(t, "Agua 600ml", item["product_name"])
	assert.Equal(t, "PCS", item["product_unit_name"])
	assert.Equal(t, "110.00", qty(t, s, u.ID))

	id := item["id"].(string)
	status, _ = doJSON(t, app, http.MethodPatch, "/api/purchase-items/"+id, map[string]any{"quantity": "15"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "115.00", qty(t, s, u.ID))

	status, body = doJSON(t, app, http.MethodGet, "/api/purchase-items?purchaseId="+purchase.ID, nil)
	require.Equal(t, http.StatusOK, status)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])
	assert.Equal(t, float64(10), meta["limit"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/purchase-items/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100.00", qty(t, s, u.ID))

	status, body = doJSON(t, app, http.MethodGet, "/api/purchase-items/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
	assert.Equal(t, "/api/purchase-items/"+id, body["path"])
}

func TestPurchaseItems_ErroresDeEntrada(t *testing.T) {
	s := memstore.New()
	sup := s.SeedSupplier("Distribuidora")
	u := s.SeedUnit(s.SeedProduct("SKU-1", "Agua").ID, entity.UnitPCS)
	purchase := s.SeedPurchase(sup.ID)
	app := buildTestApp(s, nil)

	t.Run("cantidad cero", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/purchase-items", map[string]any{
			"purchase_id": purchase.ID, "product_unit_id": u.ID, "quantity": "0",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION", errorCode(body))
		details := body["error"].(map[string]any)["details"].(map[string]any)
		assert.Equal(t, "gt=0", details["quantity"])
	})

	t.Run("compra inexistente", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/purchase-items", map[string]any{
			"purchase_id": uuid.NewString(), "product_unit_id": u.ID, "quantity": "1",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "REFERENCE_NOT_FOUND", errorCode(body))
	})

	t.Run("id no uuid", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, "/api/purchase-items/123", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("item inexistente", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPatch, "/api/purchase-items/"+uuid.NewString(), map[string]any{"quantity": "2"})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("json inválido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/purchase-items", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock, compras, catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestStocks_AjusteManualNoPermiteNegativo(t *testing.T) {
	s := memstore.New()
	u := s.SeedUnit(s.SeedProduct("SKU-1", "Agua").ID, entity.UnitPCS)
	app := buildTestApp(s, nil)

	status, _ := doJSON(t, app, http.MethodPost, "/api/stocks", map[string]any{
		"product_unit_id": u.ID, "quantity": "5", "minimum_stock": "10",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/stocks/adjust", map[string]any{
		"product_unit_id": u.ID, "quantity_adjustment": "-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(body))
	assert.Equal(t, "5.00", qty(t, s, u.ID))

	status, body = doJSON(t, app, http.MethodGet, "/api/stocks/low", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = doJSON(t, app, http.MethodGet, "/api/stocks/"+u.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, data(body)["below_minimum"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/stocks/adjust", map[string]any{
		"product_unit_id": uuid.NewString(), "quantity_adjustment": "1",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPurchases_DeleteConLineasYComprobante(t *testing.T) {
	s := memstore.New()
	sup := s.SeedSupplier("Distribuidora")
	u := s.SeedUnit(s.SeedProduct("SKU-1", "Agua").ID, entity.UnitPCS)
	app := buildTestApp(s, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/purchases", map[string]any{
		"supplier_id": sup.ID, "invoice_number": "FV-77", "total_amount": "5000",
	})
	require.Equal(t, http.StatusCreated, status, body)
	purchaseID := data(body)["id"].(string)

	status, _ = doJSON(t, app, http.MethodPost, "/api/purchase-items", map[string]any{
		"purchase_id": purchaseID, "product_unit_id": u.ID, "quantity": "1", "price": "5000", "subtotal": "5000",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, app, http.MethodDelete, "/api/purchases/"+purchaseID, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(body))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/purchases/"+purchaseID+"/receipt", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "compra-FV-77.pdf")
}

func TestCatalog_CRUDyPaginacion(t *testing.T) {
	s := memstore.New()
	app := buildTestApp(s, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Bebidas"})
	require.Equal(t, http.StatusCreated, status, body)
	catID := data(body)["id"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"sku": "A-1", "name": "Agua", "category_id": catID,
	})
	require.Equal(t, http.StatusCreated, status, body)
	productID := data(body)["id"].(string)

	status, _ = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"sku": "A-1", "name": "Otra", "category_id": catID,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/products/"+productID+"/units", map[string]any{
		"unit_name": "BOX", "conversion_to_base": "24",
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, _ = doJSON(t, app, http.MethodPost, "/api/products/"+productID+"/units", map[string]any{
		"unit_name": "KG", "conversion_to_base": "1",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/categories?page=1&limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(body))

	status, _ = doJSON(t, app, http.MethodDelete, "/api/categories/"+catID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/categories/"+catID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnitPrices_Rutas(t *testing.T) {
	s := memstore.New()
	u := s.SeedUnit(s.SeedProduct("SKU-1", "Agua").ID, entity.UnitPCS)
	app := buildTestApp(s, nil)

	status, body := doJSON(t, app, http.MethodPost, "/api/units/"+u.ID+"/prices", map[string]any{
		"price_type": "RETAIL", "price": "1500", "minimum_qty": "1", "start_date": "2026-01-01",
	})
	require.Equal(t, http.StatusCreated, status, body)
	priceID := data(body)["id"].(string)

	status, _ = doJSON(t, app, http.MethodPut, "/api/prices/"+priceID, map[string]any{"end_date": "2025-12-31"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/units/"+u.ID+"/prices", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y errores de ruta
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	status, body := doJSON(t, buildTestApp(memstore.New(), nil), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = doJSON(t, buildTestApp(memstore.New(), nil), http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, body = doJSON(t, buildTestApp(memstore.New(), errors.New("sin conexión")), http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "error", body["checks"].(map[string]any)["postgres"])
}

func TestRutaInexistente(t *testing.T) {
	status, body := doJSON(t, buildTestApp(memstore.New(), nil), http.MethodGet, "/api/nada", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ROUTE_NOT_FOUND", errorCode(body))
	assert.Equal(t, false, body["success"])
}

