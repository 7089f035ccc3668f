// Package metrics 基于Prometheus的指标收集
//
// 指标命名遵循Prometheus规范：Counter以_total结尾，
// Histogram以单位结尾（_seconds），Gauge用现在时态。
// 标签只用低基数维度（method、path、status、result），
// 不要把user_id、order_no这类高基数值放进标签。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 防止重复注册到默认Registry
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时分布
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 结算业务指标

	// CheckoutsTotal 结算执行总数
	// 标签：result（success/failure）
	CheckoutsTotal *prometheus.CounterVec

	// CheckoutDuration 结算耗时分布
	CheckoutDuration prometheus.Histogram

	// CheckoutCompensationsTotal 结算失败后补偿执行总数
	CheckoutCompensationsTotal prometheus.Counter

	// StockReservationFailures 库存预留失败总数（超卖拦截）
	StockReservationFailures prometheus.Counter

	// DiscountsAppliedTotal 折扣码成功应用总数
	// 标签：type（percentage/fixed）
	DiscountsAppliedTotal *prometheus.CounterVec

	// OrdersCancelledTotal 订单取消总数
	OrdersCancelledTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标，程序启动时调用一次
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "Number of HTTP requests currently being served",
		},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"result"},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_duration_seconds",
			Help: "Checkout pipeline latency in seconds",
			// 结算涉及库存、订单、折扣多个步骤，桶偏宽
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	CheckoutCompensationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_compensations_total",
			Help: "Total number of checkout compensation runs",
		},
	)

	StockReservationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_reservation_failures_total",
			Help: "Total number of stock reservations rejected for insufficient stock",
		},
	)

	DiscountsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discounts_applied_total",
			Help: "Total number of discount codes applied to orders",
		},
		[]string{"type"},
	)

	OrdersCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Total number of cancelled orders",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "Total number of messages published",
		},
		[]string{"exchange", "routing_key"},
	)
}
