// Package metrics records domain and transport counters in a Prometheus registry.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc/codes"

	"github.com/dtroode/bookshelf-server/internal/model"
)

// Outcome labels.
const (
	OutcomeOK             = "ok"
	OutcomeNotFound       = "not_found"
	OutcomeDuplicate      = "duplicate"
	OutcomeBadCredentials = "bad_credentials"
	OutcomeInactive       = "inactive"
	OutcomeInvalid        = "invalid"
	OutcomeError          = "error"
)

// Metrics is safe to use as a nil pointer, in which case nothing is recorded.
type Metrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	rpcTotal          *prometheus.CounterVec
	rpcDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookshelf_operations_total",
				Help: "Total number of domain operations by outcome",
			},
			[]string{"service", "operation", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookshelf_operation_duration_seconds",
				Help:    "Duration of domain operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),
		rpcTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookshelf_grpc_requests_total",
				Help: "Total number of gRPC requests by status code",
			},
			[]string{"method", "code"},
		),
		rpcDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookshelf_grpc_request_duration_seconds",
				Help:    "Duration of gRPC requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// Outcome maps err to a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, model.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, model.ErrDuplicateKey):
		return OutcomeDuplicate
	case errors.Is(err, model.ErrBadCredentials):
		return OutcomeBadCredentials
	case errors.Is(err, model.ErrInactiveAccount):
		return OutcomeInactive
	case errors.Is(err, model.ErrValidation):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// ObserveOperation records one call of service.operation that began at start.
func (m *Metrics) ObserveOperation(service, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(service, operation, Outcome(err)).Inc()
	m.operationDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveRPC(method string, code codes.Code, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcTotal.WithLabelValues(method, code.String()).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
