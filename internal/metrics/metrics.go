// Package metrics exposes Prometheus collectors for AI gateway calls and
// library state.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	gatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inspirehub",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of AI gateway operations by outcome.",
		},
		[]string{"op", "outcome"},
	)

	gatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inspirehub",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of AI gateway operations.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"op"},
	)

	favorites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "inspirehub",
			Subsystem: "library",
			Name:      "favorites",
			Help:      "Current number of favorited items.",
		},
	)
)

func init() {
	Registry.MustRegister(
		gatewayRequests,
		gatewayDuration,
		favorites,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// RecordGatewayRequest records one gateway operation. outcome is "ok",
// "cache", or a failure class.
func RecordGatewayRequest(op, outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	gatewayRequests.WithLabelValues(op, outcome).Inc()
	gatewayDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// SetFavorites sets the favorites gauge.
func SetFavorites(n int) {
	favorites.Set(float64(n))
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
