// Package memstore implementa en memoria los puertos de persistencia para los tests de
// casos de uso y handlers. Las transacciones se serializan con un mutex global y se
// deshacen restaurando una copia de stocks y líneas de compra.
package memstore

import (
	"errors"
	"sync"

	"github.com/jhoicas/inventario-pos-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex // protege los mapas
	txMu sync.Mutex // serializa transacciones
	seq  int64

	Categories  *softTable[entity.Category]
	Customers   *softTable[entity.Customer]
	Suppliers   *softTable[entity.Supplier]
	Products    *softTable[entity.Product]
	Units       *softTable[entity.ProductUnit]
	Prices      *softTable[entity.ProductUnitPrice]
	stocks      map[string]*stockRow // por product_unit_id
	purchases   map[string]*row[entity.Purchase]
	items       map[string]*row[entity.PurchaseItem]
	stockFaults map[string]error
}

type row[T any] struct {
	seq int64
	v   T
}

type stockRow = row[entity.Stock]

// New crea un almacén vacío.
func New() *Store {
	s := &Store{
		stocks:      map[string]*stockRow{},
		purchases:   map[string]*row[entity.Purchase]{},
		items:       map[string]*row[entity.PurchaseItem]{},
		stockFaults: map[string]error{},
	}
	s.Categories = newSoftTable(s, func(e *entity.Category) *string { return &e.ID }, func(e *entity.Category) *bool { return &e.IsDeleted })
	s.Customers = newSoftTable(s, func(e *entity.Customer) *string { return &e.ID }, func(e *entity.Customer) *bool { return &e.IsDeleted })
	s.Suppliers = newSoftTable(s, func(e *entity.Supplier) *string { return &e.ID }, func(e *entity.Supplier) *bool { return &e.IsDeleted })
	s.Products = newSoftTable(s, func(e *entity.Product) *string { return &e.ID }, func(e *entity.Product) *bool { return &e.IsDeleted })
	s.Units = newSoftTable(s, func(e *entity.ProductUnit) *string { return &e.ID }, func(e *entity.ProductUnit) *bool { return &e.IsDeleted })
	s.Prices = newSoftTable(s, func(e *entity.ProductUnitPrice) *string { return &e.ID }, func(e *entity.ProductUnitPrice) *bool { return &e.IsDeleted })
	return s
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// FailStockUpdate hace que la próxima actualización de stock de la unidad devuelva err.
func (s *Store) FailStockUpdate(productUnitID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockFaults[productUnitID] = err
}

// ErrInjected error genérico para inyección de fallos.
var ErrInjected = errors.New("fallo inyectado")

// snapshot copia stocks y líneas de compra (lo único que escriben las transacciones).
func (s *Store) snapshot() (map[string]*stockRow, map[string]*row[entity.PurchaseItem]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stocks := make(map[string]*stockRow, len(s.stocks))
	for k, v := range s.stocks {
		c := *v
		stocks[k] = &c
	}
	items := make(map[string]*row[entity.PurchaseItem], len(s.items))
	for k, v := range s.items {
		c := *v
		items[k] = &c
	}
	return stocks, items
}

func (s *Store) restore(stocks map[string]*stockRow, items map[string]*row[entity.PurchaseItem]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks = stocks
	s.items = items
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return []*T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
