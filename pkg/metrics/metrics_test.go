package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pos/pkg/metrics"
)

func TestObserveCheckout_CuentaPorResultado(t *testing.T) {
	m := metrics.NewCheckoutMetrics("pos")

	m.ObserveCheckout("committed", 10*time.Millisecond)
	m.ObserveCheckout("committed", 20*time.Millisecond)
	m.ObserveCheckout("insufficient_stock", time.Millisecond)

	n, err := testutil.GatherAndCount(m.Registry(), "pos_checkout_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por outcome")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `pos_checkout_total{outcome="committed"} 2`)
	assert.Contains(t, string(body), `pos_checkout_duration_seconds_count{outcome="insufficient_stock"} 1`)
}
