// Package metrics 는 Prometheus 메트릭 수집과 노출을 제공한다.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 는 메트릭 기록 인터페이스.
// 핸들러와 서비스 계층에서 사용한다.
type Recorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(path string, duration time.Duration)
	RecordProviderCall(provider string, success bool)
	RecordProviderLatency(provider string, duration time.Duration)
	RecordSignup(provider string)
}

// Collector 는 Prometheus 메트릭을 수집하는 구현.
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	signups         *prometheus.CounterVec
}

// NewCollector 는 새 Collector 를 생성하고 지정된 레지스트리에 메트릭을 등록한다.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_http_status_total",
			Help: "HTTP 상태 코드별 응답 수",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipe_request_latency_seconds",
			Help:    "경로별 요청 처리 레이턴시(초)",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_provider_calls_total",
			Help: "OAuth 프로바이더 호출 수(결과별)",
		}, []string{"provider", "result"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recipe_provider_latency_seconds",
			Help:    "OAuth 프로바이더 호출 레이턴시(초)",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_signups_total",
			Help: "프로바이더별 회원가입 수",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.providerCalls,
		c.providerLatency,
		c.signups,
	)

	return c
}

// RecordHTTPStatus 는 HTTP 상태 코드를 기록한다.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency 는 요청 처리 레이턴시를 기록한다.
func (c *Collector) RecordRequestLatency(path string, duration time.Duration) {
	c.requestLatency.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordProviderCall 은 프로바이더 호출 결과를 기록한다.
func (c *Collector) RecordProviderCall(provider string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.providerCalls.WithLabelValues(provider, result).Inc()
}

// RecordProviderLatency 는 프로바이더 호출 레이턴시를 기록한다.
func (c *Collector) RecordProviderLatency(provider string, duration time.Duration) {
	c.providerLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordSignup 은 회원가입을 기록한다.
func (c *Collector) RecordSignup(provider string) {
	c.signups.WithLabelValues(provider).Inc()
}

// Handler 는 Prometheus 스크레이프용 HTTP 핸들러를 반환한다.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var _ Recorder = (*Collector)(nil)
