package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry methods are safe to call on a nil *Registry.
type Registry struct {
	reg              *prometheus.Registry
	OrdersCreated    prometheus.Counter
	OrderRevenue     prometheus.Counter
	CheckoutFailures *prometheus.CounterVec
	StatusUpdates    *prometheus.CounterVec
	CartMutations    *prometheus.CounterVec
	LoginAttempts    *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "codstore_orders_created_total"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{Name: "codstore_orders_value_total"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "codstore_checkout_failures_total"}, []string{"reason"})
	status := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "codstore_order_status_updates_total"}, []string{"status"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "codstore_cart_mutations_total"}, []string{"op"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "codstore_admin_logins_total"}, []string{"result"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codstore_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "code"})

	r.MustRegister(created, revenue, failures, status, cartOps, logins, httpDur,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Registry{
		reg:              r,
		OrdersCreated:    created,
		OrderRevenue:     revenue,
		CheckoutFailures: failures,
		StatusUpdates:    status,
		CartMutations:    cartOps,
		LoginAttempts:    logins,
		HTTPDuration:     httpDur,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) OrderCreated(total float64) {
	if r == nil {
		return
	}
	r.OrdersCreated.Inc()
	r.OrderRevenue.Add(total)
}

func (r *Registry) CheckoutFailed(reason string) {
	if r == nil {
		return
	}
	r.CheckoutFailures.WithLabelValues(reason).Inc()
}

func (r *Registry) StatusUpdated(status string) {
	if r == nil {
		return
	}
	r.StatusUpdates.WithLabelValues(status).Inc()
}

func (r *Registry) CartMutated(op string) {
	if r == nil {
		return
	}
	r.CartMutations.WithLabelValues(op).Inc()
}

func (r *Registry) Login(result string) {
	if r == nil {
		return
	}
	r.LoginAttempts.WithLabelValues(result).Inc()
}

func (r *Registry) ObserveHTTP(method string, code int, d time.Duration) {
	if r == nil {
		return
	}
	r.HTTPDuration.WithLabelValues(method, strconv.Itoa(code)).Observe(d.Seconds())
}
