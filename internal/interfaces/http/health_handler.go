package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia verificable en readiness (pool de BD, caché).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler liveness y readiness.
type HealthHandler struct {
	service string
	checks  map[string]Pinger
}

// NewHealthHandler construye el handler; checks se consultan en /health/ready.
func NewHealthHandler(service string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// Live responde siempre 200 mientras el proceso atienda.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.service})
}

// Ready responde 503 si alguna dependencia no responde en 2s.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	result := make(fiber.Map, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			requestLogger(c).Warn().Err(err).Str("check", name).Msg("readiness fallida")
			result[name] = "error"
			status = fiber.StatusServiceUnavailable
			continue
		}
		result[name] = "ok"
	}
	state := "ready"
	if status != fiber.StatusOK {
		state = "unavailable"
	}
	return c.Status(status).JSON(fiber.Map{"status": state, "service": h.service, "checks": result})
}
