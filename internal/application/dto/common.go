package dto

import (
	"time"

	"github.com/jhoicas/inventario-pos-api/internal/domain"
)

// Límites de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery paginación por página/límite para listados.
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Validate rechaza página < 1 o límite fuera de [1, MaxLimit].
func (p PageQuery) Validate() error {
	fields := map[string]string{}
	if p.Page < 1 {
		fields["page"] = "min=1"
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		fields["limit"] = "between=1,100"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Offset desplazamiento SQL equivalente.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta metadatos de página en respuestas.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageMeta calcula los metadatos para el total dado.
func NewPageMeta(q PageQuery, total int) PageMeta {
	pages := 0
	if q.Limit > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return PageMeta{Page: q.Page, Limit: q.Limit, Total: total, TotalPages: pages}
}

// Page lista paginada genérica.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// APIResponse sobre estándar de respuesta exitosa.
type APIResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	StatusCode int    `json:"status_code"`
}

// PaginatedResponse sobre de respuesta para listados.
type PaginatedResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Data       any      `json:"data"`
	Meta       PageMeta `json:"meta"`
	StatusCode int      `json:"status_code"`
}

// ErrorBody detalle del error.
type ErrorBody struct {
	StatusCode int               `json:"status_code"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}
