package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Scale número de decimales de cantidades y montos (NUMERIC(10,2)).
const Scale = 2

// StockDelta ajuste firmado sobre el stock de una unidad de producto.
type StockDelta struct {
	ProductUnitID string
	Delta         decimal.Decimal
}

// ApplyDelta calcula la nueva cantidad (servicio de dominio). negative indica que el resultado
// quedó por debajo de cero; decidir si eso se permite es responsabilidad del llamador.
func ApplyDelta(current, delta decimal.Decimal) (newQty decimal.Decimal, negative bool) {
	newQty = current.Add(delta)
	return newQty, newQty.IsNegative()
}

// HasValidScale indica si el valor no tiene más de Scale decimales significativos.
func HasValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// CreateDeltas ajustes para una línea de compra nueva: +cantidad en su unidad.
func CreateDeltas(unitID string, qty decimal.Decimal) []StockDelta {
	return []StockDelta{{ProductUnitID: unitID, Delta: qty}}
}

// DeleteDeltas ajustes para una línea de compra eliminada: -cantidad en su unidad.
func DeleteDeltas(unitID string, qty decimal.Decimal) []StockDelta {
	return []StockDelta{{ProductUnitID: unitID, Delta: qty.Neg()}}
}

// UpdateDeltas ajustes para una línea modificada, calculados contra la foto previa (oldUnit, oldQty).
//   - cambio de unidad: -oldQty en la unidad vieja y +newQty en la nueva, ordenados por ID de unidad
//     para que dos transacciones tomen los bloqueos en el mismo orden.
//   - misma unidad: un único ajuste newQty-oldQty.
//   - sin cambios: ninguno.
func UpdateDeltas(oldUnit string, oldQty decimal.Decimal, newUnit string, newQty decimal.Decimal) []StockDelta {
	if newUnit != oldUnit {
		out := []StockDelta{
			{ProductUnitID: oldUnit, Delta: oldQty.Neg()},
			{ProductUnitID: newUnit, Delta: newQty},
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ProductUnitID < out[j].ProductUnitID })
		return out
	}
	diff := newQty.Sub(oldQty)
	if diff.IsZero() {
		return nil
	}
	return []StockDelta{{ProductUnitID: oldUnit, Delta: diff}}
}
