// Package metrics собирает Prometheus-метрики HTTP-слоя в собственный реестр,
// чтобы несколько серверов в одном процессе (тесты) не конфликтовали.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Направления передачи для AddBytes.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

type HTTP struct {
	reg              *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	bytesTransferred *prometheus.CounterVec
	sweptUploads     prometheus.Counter
}

// NewHTTP создаёт реестр и регистрирует в нём метрики сервиса.
func NewHTTP() *HTTP {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &HTTP{
		reg: reg,
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mininas_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mininas_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60},
			},
			[]string{"route", "method"},
		),
		requestsInFlight: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "mininas_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),
		bytesTransferred: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mininas_bytes_transferred_total",
				Help: "Total file bytes uploaded (in) and streamed to clients (out)",
			},
			[]string{"direction"},
		),
		sweptUploads: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "mininas_swept_uploads_total",
				Help: "Stale temporary upload files removed by the sweeper",
			},
		),
	}
}

// Handler отдаёт метрики в формате Prometheus.
func (m *HTTP) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Begin отмечает начало запроса и возвращает функцию его завершения.
func (m *HTTP) Begin() func(route, method string, status int) {
	start := time.Now()
	m.requestsInFlight.Inc()
	return func(route, method string, status int) {
		m.requestsInFlight.Dec()
		m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

func (m *HTTP) AddBytes(direction string, n int64) {
	if n > 0 {
		m.bytesTransferred.WithLabelValues(direction).Add(float64(n))
	}
}

func (m *HTTP) AddSwept(n int) {
	if n > 0 {
		m.sweptUploads.Add(float64(n))
	}
}
