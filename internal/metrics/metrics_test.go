// internal/metrics/metrics_test.go
package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := New()
	m.ObserveOperation("transaction.create", OutcomeOK)
	m.ObserveOperation("transaction.create", OutcomeOK)
	m.ObserveOperation("transaction.create", OutcomePartial)

	assert.Equal(t, float64(2), m.OperationCount("transaction.create", OutcomeOK))
	assert.Equal(t, float64(1), m.OperationCount("transaction.create", OutcomePartial))
	assert.Equal(t, float64(0), m.OperationCount("transaction.delete", OutcomeOK))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("wallet.edit", OutcomeFailed)
		m.ObserveStep("wallet.edit", "update wallet")
	})
}

func TestHandlerExposesRouteLatency(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/wallets/{walletID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/wallets/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/wallets/{walletID}"`)
	assert.Contains(t, string(body), `status="418"`)
}
