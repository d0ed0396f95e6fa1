package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP

	// APIRequestsTotal 请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webdb_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration 请求处理时长
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webdb_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Query executor

	// QueryDuration 单条语句执行时长
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webdb_query_duration_seconds",
			Help:    "Statement round trip duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"operation"}, // operation: query, exec
	)

	// QueryErrorsTotal 按错误类型统计失败语句
	QueryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webdb_query_errors_total",
			Help: "Total number of failed statements by error kind",
		},
		[]string{"operation", "kind"},
	)
)
