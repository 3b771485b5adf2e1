// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**：只增不减的累计值（请求总数、借阅总数）
// - **Gauge（仪表盘）**：可增可减的瞬时值（处理中的请求数）
// - **Histogram（直方图）**：观测值的分布，自动计算分位数（请求耗时）
//
// 使用示例：
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录指标
//	metrics.LoansCreatedTotal.Inc()
//
// 命名规范：
// - Counter以`_total`结尾（http_requests_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - 避免高基数标签（不要用loan_id做标签，用status、method做标签）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/books）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// LoansCreatedTotal 借阅创建总数（Counter）
	LoansCreatedTotal prometheus.Counter

	// LoansRejectedTotal 借阅被业务规则拒绝的总数（Counter）
	// 标签：reason（book_in_use/book_not_found）
	LoansRejectedTotal *prometheus.CounterVec

	// LoansReturnedTotal 归还登记总数（Counter）
	LoansReturnedTotal prometheus.Counter

	// 逾期通知指标

	// LateLoanNotificationsTotal 逾期通知任务执行总数（Counter）
	// 标签：result（success/failure/empty）
	LateLoanNotificationsTotal *prometheus.CounterVec

	// LateLoanRecipients 单次逾期通知的收件人数量分布（Histogram）
	LateLoanRecipients prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 借阅业务指标
	LoansCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "借阅创建总数",
		},
	)

	LoansRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loans_rejected_total",
			Help: "借阅被拒绝总数",
		},
		[]string{"reason"},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "归还登记总数",
		},
	)

	// 逾期通知指标
	LateLoanNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "late_loan_notifications_total",
			Help: "逾期通知任务执行总数",
		},
		[]string{"result"},
	)

	LateLoanRecipients = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "late_loan_recipients",
			Help:    "单次逾期通知的收件人数量",
			Buckets: []float64{1, 5, 10, 50, 100, 500},
		},
	)
}
