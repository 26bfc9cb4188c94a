package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
)

// Manager holds the custom Prometheus metrics for the API.
type Manager struct {
	Registry *prometheus.Registry

	UsersRegisteredTotal prometheus.Counter
	PasswordResetsTotal  prometheus.Counter
	BooksCreatedTotal    prometheus.Counter
	CartMutationsTotal   *prometheus.CounterVec

	HTTPRequestsTotal *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	usersRegisteredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	})
	passwordResetsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "password_resets_total",
		Help:      "Total number of successful password resets.",
	})
	booksCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "books_created_total",
		Help:      "Total number of catalog books created.",
	})
	cartMutationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations by operation.",
	}, []string{"operation"})

	httpRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		usersRegisteredTotal,
		passwordResetsTotal,
		booksCreatedTotal,
		cartMutationsTotal,
		httpRequestsTotal,
		httpLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		UsersRegisteredTotal: usersRegisteredTotal,
		PasswordResetsTotal:  passwordResetsTotal,
		BooksCreatedTotal:    booksCreatedTotal,
		CartMutationsTotal:   cartMutationsTotal,
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPLatency:          httpLatency,
	}
}

// StartServer exposes the registry on its own port. Blocks, so run it in a goroutine.
func (m *Manager) StartServer(port string, log logger.Logger) error {
	if port == "" {
		log.Info("metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	log.Infof("metrics server starting on :%s", port)
	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
