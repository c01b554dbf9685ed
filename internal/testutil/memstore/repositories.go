package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pos-api/internal/application/inventory"
	"github.com/jhoicas/inventario-pos-api/internal/domain"
	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
	"github.com/jhoicas/inventario-pos-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository         = (*softTable[entity.Category])(nil)
	_ repository.ProductRepository          = (*ProductRepo)(nil)
	_ repository.ProductUnitRepository      = (*UnitRepo)(nil)
	_ repository.ProductUnitPriceRepository = (*PriceRepo)(nil)
	_ repository.StockRepository            = (*StockRepo)(nil)
	_ repository.PurchaseRepository         = (*PurchaseRepo)(nil)
	_ repository.PurchaseItemRepository     = (*PurchaseItemRepo)(nil)
	_ inventory.TxRunner                    = (*TxRunner)(nil)
)

func (s *Store) CategoryRepo() repository.CategoryRepository { return s.Categories }
func (s *Store) CustomerRepo() repository.CustomerRepository { return s.Customers }
func (s *Store) SupplierRepo() repository.SupplierRepository { return s.Suppliers }
func (s *Store) ProductRepo() *ProductRepo                    { return &ProductRepo{s.Products} }
func (s *Store) UnitRepo() *UnitRepo                          { return &UnitRepo{s.Units} }
func (s *Store) PriceRepo() *PriceRepo                        { return &PriceRepo{s.Prices} }
func (s *Store) StockRepo() *StockRepo                        { return &StockRepo{s} }
func (s *Store) PurchaseRepo() *PurchaseRepo                  { return &PurchaseRepo{s} }
func (s *Store) PurchaseItemRepo() *PurchaseItemRepo          { return &PurchaseItemRepo{s} }
func (s *Store) TxRunner() *TxRunner                          { return &TxRunner{s} }

// ── Catálogo ──────────────────────────────────────────────────────────────────

// ProductRepo añade la unicidad de SKU.
type ProductRepo struct{ *softTable[entity.Product] }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if existing, _ := r.GetBySKU(ctx, p.SKU); existing != nil {
		return domain.ErrDuplicate
	}
	return r.softTable.Create(ctx, p)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	list := r.Filter(func(p *entity.Product) bool { return p.SKU == sku })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

type UnitRepo struct{ *softTable[entity.ProductUnit] }

func (r *UnitRepo) ListByProductID(_ context.Context, productID string) ([]*entity.ProductUnit, error) {
	list := r.Filter(func(u *entity.ProductUnit) bool { return u.ProductID == productID })
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsBaseUnit != list[j].IsBaseUnit {
			return list[i].IsBaseUnit
		}
		return list[i].UnitName < list[j].UnitName
	})
	return list, nil
}

func (r *UnitRepo) GetByProductAndUnitName(_ context.Context, productID, unitName string) (*entity.ProductUnit, error) {
	list := r.Filter(func(u *entity.ProductUnit) bool { return u.ProductID == productID && u.UnitName == unitName })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

type PriceRepo struct{ *softTable[entity.ProductUnitPrice] }

func (r *PriceRepo) ListByProductUnitID(_ context.Context, productUnitID string) ([]*entity.ProductUnitPrice, error) {
	list := r.Filter(func(p *entity.ProductUnitPrice) bool { return p.ProductUnitID == productUnitID })
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].PriceType != list[j].PriceType {
			return list[i].PriceType < list[j].PriceType
		}
		return list[i].MinimumQty.LessThan(list[j].MinimumQty)
	})
	return list, nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type StockRepo struct{ s *Store }

func (r *StockRepo) Create(_ context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stocks[st.ProductUnitID]; ok {
		return domain.ErrDuplicate
	}
	r.s.stocks[st.ProductUnitID] = &stockRow{seq: r.s.next(), v: *st}
	return nil
}

func (r *StockRepo) GetByProductUnitID(_ context.Context, productUnitID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.stocks[productUnitID]
	if !ok {
		return nil, nil
	}
	c := row.v
	return &c, nil
}

// GetByProductUnitIDForUpdate el bloqueo lo da la serialización del TxRunner.
func (r *StockRepo) GetByProductUnitIDForUpdate(ctx context.Context, productUnitID string) (*entity.Stock, error) {
	return r.GetByProductUnitID(ctx, productUnitID)
}

func (r *StockRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for unitID, row := range r.s.stocks {
		if row.v.ID != id {
			continue
		}
		if err, ok := r.s.stockFaults[unitID]; ok {
			delete(r.s.stockFaults, unitID)
			return err
		}
		row.v.Quantity = quantity
		row.v.UpdatedAt = time.Now()
		return nil
	}
	return domain.ErrNotFound
}

func (r *StockRepo) List(_ context.Context, limit, offset int) ([]*entity.Stock, int, error) {
	all := r.filter(func(*entity.Stock) bool { return true })
	return page(all, limit, offset), len(all), nil
}

func (r *StockRepo) ListBelowMinimum(_ context.Context, limit, offset int) ([]*entity.Stock, int, error) {
	all := r.filter(func(s *entity.Stock) bool { return s.BelowMinimum() })
	return page(all, limit, offset), len(all), nil
}

func (r *StockRepo) filter(keep func(*entity.Stock) bool) []*entity.Stock {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*stockRow, 0, len(r.s.stocks))
	for _, row := range r.s.stocks {
		if keep(&row.v) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Stock, len(rows))
	for i, row := range rows {
		c := row.v
		out[i] = &c
	}
	return out
}

// ── Compras ───────────────────────────────────────────────────────────────────

type PurchaseRepo struct{ s *Store }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.purchases[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.purchases[p.ID] = &row[entity.Purchase]{seq: r.s.next(), v: *p}
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	c := row.v
	return &c, nil
}

func (r *PurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.purchases[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	row.v = *p
	return nil
}

func (r *PurchaseRepo) List(_ context.Context, limit, offset int) ([]*entity.Purchase, int, error) {
	r.s.mu.Lock()
	rows := make([]*row[entity.Purchase], 0, len(r.s.purchases))
	for _, row := range r.s.purchases {
		rows = append(rows, row)
	}
	r.s.mu.Unlock()
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	all := make([]*entity.Purchase, len(rows))
	for i, row := range rows {
		c := row.v
		all[i] = &c
	}
	return page(all, limit, offset), len(all), nil
}

// Delete emula la FK RESTRICT de purchase_items.
func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.purchases[id]; !ok {
		return domain.ErrNotFound
	}
	for _, it := range r.s.items {
		if it.v.PurchaseID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.purchases, id)
	return nil
}

type PurchaseItemRepo struct{ s *Store }

func (r *PurchaseItemRepo) Create(_ context.Context, it *entity.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.purchases[it.PurchaseID]; !ok {
		return domain.ErrConflict
	}
	c := *it
	c.ProductName, c.UnitName = "", ""
	r.s.items[it.ID] = &row[entity.PurchaseItem]{seq: r.s.next(), v: c}
	return nil
}

func (r *PurchaseItemRepo) GetByID(_ context.Context, id string) (*entity.PurchaseItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return r.joined(row.v), nil
}

func (r *PurchaseItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseItem, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseItemRepo) Update(_ context.Context, it *entity.PurchaseItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.items[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *it
	c.ProductName, c.UnitName = "", ""
	row.v = c
	return nil
}

func (r *PurchaseItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *PurchaseItemRepo) List(_ context.Context, purchaseID string, limit, offset int) ([]*entity.PurchaseItem, int, error) {
	all := r.filter(purchaseID, true)
	return page(all, limit, offset), len(all), nil
}

func (r *PurchaseItemRepo) ListByPurchaseID(_ context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	return r.filter(purchaseID, false), nil
}

func (r *PurchaseItemRepo) CountByPurchaseID(_ context.Context, purchaseID string) (int, error) {
	return len(r.filter(purchaseID, false)), nil
}

// filter con purchaseID vacío devuelve todas las líneas.
func (r *PurchaseItemRepo) filter(purchaseID string, newestFirst bool) []*entity.PurchaseItem {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]*row[entity.PurchaseItem], 0, len(r.s.items))
	for _, row := range r.s.items {
		if purchaseID == "" || row.v.PurchaseID == purchaseID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if newestFirst {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*entity.PurchaseItem, len(rows))
	for i, row := range rows {
		out[i] = r.joined(row.v)
	}
	return out
}

// joined completa los nombres como lo haría el JOIN; se llama con s.mu tomado.
func (r *PurchaseItemRepo) joined(it entity.PurchaseItem) *entity.PurchaseItem {
	if p, ok := r.s.Products.rows[it.ProductID]; ok {
		it.ProductName = p.v.Name
	}
	if u, ok := r.s.Units.rows[it.ProductUnitID]; ok {
		it.UnitName = u.v.UnitName
	}
	return &it
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones y deshace stocks y líneas si fn falla.
type TxRunner struct{ s *Store }

func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	stocks, items := r.s.snapshot()
	err := fn(inventory.TxRepositories{
		Stocks:        r.s.StockRepo(),
		PurchaseItems: r.s.PurchaseItemRepo(),
	})
	if err != nil {
		r.s.restore(stocks, items)
		return err
	}
	return nil
}
