// Package metrics 定义 Prometheus 指标，经 /metrics 端点暴露。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal 按方法、路由与状态码统计请求数。
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPRequestDuration 按方法与路由统计请求耗时。
	HTTPRequestDuration *prometheus.HistogramVec
	// StoreErrorsTotal 统计落库操作的内部错误数（不含 404/409）。
	StoreErrorsTotal prometheus.Counter

	initOnce sync.Once
)

// InitMetrics 注册所有指标。重复调用是安全的（测试里会多次初始化）。
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authapi_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"})

		HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authapi_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

		StoreErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authapi_store_errors_total",
			Help: "Total unexpected persistence errors.",
		})

		prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, StoreErrorsTotal)
	})
}
