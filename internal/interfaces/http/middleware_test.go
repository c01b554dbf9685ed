package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/inventario-pos-api/internal/interfaces/http"
	"github.com/jhoicas/inventario-pos-api/pkg/logger"
)

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogger_RegistraRequestIDYStatus(t *testing.T) {
	var buf bytes.Buffer
	app := apphttp.NewApp("test", logger.NewWithWriter(&buf, "debug"))
	app.Get("/eco", func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/eco", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "/eco", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestRequestLogger_ErrorNoManejadoEs500SinDetalle(t *testing.T) {
	var buf bytes.Buffer
	app := apphttp.NewApp("test", logger.NewWithWriter(&buf, "debug"))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return errors.New("dsn=postgres://secreto")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	e := body["error"].(map[string]any)
	assert.Equal(t, "INTERNAL", e["code"])
	assert.NotContains(t, e["message"], "secreto")

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRecover_PanicoDevuelve500(t *testing.T) {
	app := apphttp.NewApp("test", logger.Nop())
	app.Get("/panico", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panico", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
