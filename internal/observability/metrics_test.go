package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/catalog-service/internal/config"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveDecision("update", "revoked")
	m.ObserveDecision("update", "revoked")
	m.ObserveLedgerLookup("unknown")
	m.RecordError("/customer", "PUT", "CREDENTIAL_REVOKED")
	m.RecordRequest("/customer", "PUT", 401, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("update", "revoked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("PUT", "/customer", "CREDENTIAL_REVOKED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("PUT", "/customer", "401")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecision("create", "allow")
		m.ObserveLedgerLookup("active")
		m.RecordError("/", "GET", "X")
		m.RecordRequest("/", "GET", 200, time.Millisecond)
	})
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveDecision("delete", "ownership_mismatch")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_auth_decisions_total{operation="delete",outcome="ownership_mismatch"} 1`)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), m))
	app.Get("/customer/:customerID/:name", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/customer/1/Jo", nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/customer/1/Jo", fields["path"])
	assert.Equal(t, "/customer/:customerID/:name", fields["route"])
	assert.EqualValues(t, fiber.StatusNoContent, fields["status"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/customer/:customerID/:name", "204")))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "DEBUG"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}
