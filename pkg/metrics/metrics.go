// Package metrics expõe os indicadores Prometheus da API e do agente de voz
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal conta requisições por método, rota e status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration mede a duração das requisições por método e rota
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress é o número de requisições em andamento
	HTTPRequestsInProgress prometheus.Gauge

	// VoiceTurnsTotal conta turnos do agente por papel e ação
	VoiceTurnsTotal *prometheus.CounterVec

	// VoiceTurnErrorsTotal conta turnos que falharam, por papel e motivo
	VoiceTurnErrorsTotal *prometheus.CounterVec

	// OrdersCommittedTotal conta pedidos efetivados por origem (voice, api)
	OrdersCommittedTotal *prometheus.CounterVec

	// OrdersCancelledTotal conta pedidos cancelados
	OrdersCancelledTotal prometheus.Counter

	// StockItemsAddedTotal conta itens cadastrados por origem (voice, api, csv)
	StockItemsAddedTotal *prometheus.CounterVec
)

// InitMetrics registra os indicadores no registro padrão. Pode ser chamada
// mais de uma vez.
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total de requisições HTTP",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duração das requisições HTTP em segundos",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "Requisições HTTP em andamento",
			},
		)

		VoiceTurnsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_turns_total",
				Help: "Total de turnos processados pelo agente de voz",
			},
			[]string{"role", "action"},
		)

		VoiceTurnErrorsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voice_turn_errors_total",
				Help: "Total de turnos do agente de voz que falharam",
			},
			[]string{"role", "reason"},
		)

		OrdersCommittedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_committed_total",
				Help: "Total de pedidos confirmados",
			},
			[]string{"source"},
		)

		OrdersCancelledTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "Total de pedidos cancelados",
			},
		)

		StockItemsAddedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_items_added_total",
				Help: "Total de itens de estoque cadastrados",
			},
			[]string{"source"},
		)
	})
}

func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, v float64) {
	counter.With(labels).Add(v)
}

func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

func ObserveHistogramVec(h *prometheus.HistogramVec, labels map[string]string, v float64) {
	h.With(labels).Observe(v)
}

// GinMiddleware registra contagem, duração e concorrência das requisições.
// Usa a rota registrada (FullPath) para não explodir a cardinalidade.
func GinMiddleware() gin.HandlerFunc {
	InitMetrics()

	return func(c *gin.Context) {
		start := time.Now()
		IncGauge(HTTPRequestsInProgress)
		defer DecGauge(HTTPRequestsInProgress)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		IncCounterVec(HTTPRequestsTotal, map[string]string{
			"method": method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		ObserveHistogramVec(HTTPRequestDuration, map[string]string{
			"method": method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}

// Handler expõe o endpoint /metrics
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
