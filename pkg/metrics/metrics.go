// Package metrics はPrometheusメトリクスを提供する。
//
// グローバルレジストリは使わず、サーバーごとに専用のレジストリを持つ。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute はどのルートにも一致しなかったリクエストのラベル値。
// ラベルのカーディナリティを抑えるため生のパスは使わない。
const unmatchedRoute = "unmatched"

// outcomeNoResponse は上流からレスポンスを受け取れなかった場合のラベル値。
const outcomeNoResponse = "no_response"

// Metrics はマーケットプロキシのメトリクス一式。
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	breakerState     *prometheus.GaugeVec
}

// New は新しいMetricsを生成する。namespaceが空の場合は "marketproxy" を使う。
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "marketproxy"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Total number of upstream API requests by outcome",
			},
			[]string{"upstream", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "request_duration_seconds",
				Help:      "Upstream API request duration in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"upstream"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.upstreamTotal,
		m.upstreamDuration,
		m.breakerState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest は完了したHTTPリクエストを記録する。
// routeにはルートのパターンを渡す。空の場合は unmatched として記録する。
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = unmatchedRoute
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpstream は上流APIへのリクエストを記録する。
// statusが0の場合はレスポンスを受け取れなかったものとして扱う。
func (m *Metrics) ObserveUpstream(upstream string, status int, d time.Duration) {
	m.upstreamTotal.WithLabelValues(upstream, outcome(status)).Inc()
	m.upstreamDuration.WithLabelValues(upstream).Observe(d.Seconds())
}

// SetBreakerState はサーキットブレーカーの状態を記録する。
func (m *Metrics) SetBreakerState(name string, state int) {
	m.breakerState.WithLabelValues(name).Set(float64(state))
}

// Registry は内部のレジストリを返す。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler はメトリクスを公開するHTTPハンドラを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// outcome はステータスコードを "2xx" 形式のクラスに丸める。
func outcome(status int) string {
	if status <= 0 {
		return outcomeNoResponse
	}
	return strconv.Itoa(status/100) + "xx"
}
