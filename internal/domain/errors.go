package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrReferenceNotFound = errors.New("referencia no encontrada")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockNotTracked   = errors.New("la unidad de producto no tiene fila de stock")
	ErrLockTimeout       = errors.New("tiempo de espera de bloqueo agotado")
)

// ReferenceNotFoundError indica que una entidad referenciada por la entrada no existe
// (compra, unidad de producto, producto, proveedor, categoría).
type ReferenceNotFoundError struct {
	Entity string
	ID     string
}

// NewReferenceNotFound construye el error para la entidad e ID dados.
func NewReferenceNotFound(entity, id string) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{Entity: entity, ID: id}
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s con id %s no encontrado", e.Entity, e.ID)
}

// Is permite errors.Is(err, ErrReferenceNotFound).
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// ValidationError agrupa errores de validación por campo.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un error con un único campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación fallida: " + strings.Join(parts, ", ")
}

// Unwrap hace que errors.Is(err, ErrInvalidInput) sea verdadero.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
