package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CountersAndHandler(t *testing.T) {
	r := NewRegistry()
	r.OrderCreated(170000)
	r.OrderCreated(30000)
	r.CheckoutFailed("validation")
	r.StatusUpdated("ready")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.OrdersCreated))
	assert.Equal(t, 200000.0, testutil.ToFloat64(r.OrderRevenue))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CheckoutFailures.WithLabelValues("validation")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "codstore_orders_created_total 2")
	assert.Contains(t, string(body), `codstore_order_status_updates_total{status="ready"} 1`)
}

func TestRegistry_NilIsSafe(t *testing.T) {
	var r *Registry
	r.OrderCreated(1)
	r.CheckoutFailed("x")
	r.StatusUpdated("ready")
	r.CartMutated("add")
	r.Login("ok")
	r.ObserveHTTP("GET", 200, 0)
}
