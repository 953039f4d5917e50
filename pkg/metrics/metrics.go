// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**：只增不减的累计值，如HTTP请求总数
// - **Histogram（直方图）**：观测值的分布，如请求耗时（自动计算P50/P90/P99）
//
// 命名规范：
// - Counter以`_total`结尾（http_requests_total）
// - Histogram以单位结尾（http_request_duration_seconds）
//
// 使用示例：
//
//	m := metrics.New()
//	r.GET("/metrics", gin.WrapH(m.Handler()))
//	m.ObserveHTTPRequest("POST", "/api/v1/users", 200, elapsed)
//	m.IncWorkflow("create_user_with_books", "success")
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
// 设计说明：
// 1. 使用独立的Registry而非prometheus.DefaultRegisterer，避免测试间指标冲突
// 2. 指标在New中一次性注册，业务代码只调用Observe/Inc方法
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	workflowTotal       *prometheus.CounterVec
}

// New 创建并注册所有指标
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booklib_http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "booklib_http_request_duration_seconds",
				Help:    "HTTP请求耗时分布",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		workflowTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booklib_workflow_total",
				Help: "聚合工作流执行总数(按结果分类)",
			},
			[]string{"workflow", "result"},
		),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.workflowTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler 返回/metrics端点的HTTP处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest 记录一次HTTP请求
// 注意：path应使用路由模板（/api/v1/users/:userId）而非实际路径，防止标签基数爆炸
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncWorkflow 记录一次聚合工作流执行
// workflow取值：create_user_with_books | update_user_with_books |
// get_user_with_books | delete_user_with_books
// result取值：success | error
func (m *Metrics) IncWorkflow(workflow, result string) {
	m.workflowTotal.WithLabelValues(workflow, result).Inc()
}

// Registry 暴露底层Registry（测试中用于Gather指标快照）
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
