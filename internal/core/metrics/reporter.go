package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "lifecycle"

// 接口符合性检查
var _ pkgif.MetricsReporter = (*PrometheusReporter)(nil)

// ============================================================================
//                              PrometheusReporter
// ============================================================================

// PrometheusReporter 基于 Prometheus 的指标上报器
type PrometheusReporter struct {
	scopesOpened prometheus.Counter
	scopesClosed prometheus.Counter

	guardsArmed    prometheus.Counter
	guardsReleased *prometheus.CounterVec

	cleanupsRegistered prometheus.Counter
	cleanupsRun        *prometheus.CounterVec
	queueDepth         prometheus.Gauge

	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
}

// NewPrometheusReporter 创建 Prometheus 指标上报器
//
// 参数:
//   - reg: 指标注册器,nil 时使用 prometheus.DefaultRegisterer
//   - namespace: 指标命名空间,空串时使用 DefaultNamespace
//
// 返回:
//   - *PrometheusReporter: 新上报器实例
func NewPrometheusReporter(reg prometheus.Registerer, namespace string) *PrometheusReporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &PrometheusReporter{
		scopesOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scope",
			Name:      "opened_total",
			Help:      "累计创建的作用域数",
		}),
		scopesClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scope",
			Name:      "closed_total",
			Help:      "累计关闭的作用域数",
		}),
		guardsArmed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scope",
			Name:      "guards_armed_total",
			Help:      "累计武装的守卫数",
		}),
		guardsReleased: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scope",
			Name:      "guards_released_total",
			Help:      "累计完成释放的守卫数",
		}, []string{"trigger", "result"}),
		cleanupsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "registered_total",
			Help:      "累计注册的清理动作数",
		}),
		cleanupsRun: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "run_total",
			Help:      "累计执行的清理动作数",
		}, []string{"trigger", "result"}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "queue_depth",
			Help:      "后台执行器当前队列深度",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "弱引用缓存命中次数",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "弱引用缓存未命中次数",
		}),
		cacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "弱引用缓存条目清除次数",
		}),
	}
}

// ScopeOpened 记录作用域打开
func (r *PrometheusReporter) ScopeOpened() {
	r.scopesOpened.Inc()
}

// ScopeClosed 记录作用域关闭
func (r *PrometheusReporter) ScopeClosed() {
	r.scopesClosed.Inc()
}

// GuardArmed 记录守卫进入待命
func (r *PrometheusReporter) GuardArmed() {
	r.guardsArmed.Inc()
}

// GuardReleased 记录守卫完成释放
func (r *PrometheusReporter) GuardReleased(trigger types.Trigger, failed bool) {
	r.guardsReleased.WithLabelValues(trigger.String(), resultLabel(failed)).Inc()
}

// CleanupRegistered 记录清理注册
func (r *PrometheusReporter) CleanupRegistered() {
	r.cleanupsRegistered.Inc()
}

// CleanupRun 记录清理动作执行
func (r *PrometheusReporter) CleanupRun(trigger types.Trigger, failed bool) {
	r.cleanupsRun.WithLabelValues(trigger.String(), resultLabel(failed)).Inc()
}

// SweeperQueueDepth 记录后台执行器当前队列深度
func (r *PrometheusReporter) SweeperQueueDepth(depth int) {
	r.queueDepth.Set(float64(depth))
}

// CacheHit 记录弱引用缓存命中
func (r *PrometheusReporter) CacheHit() {
	r.cacheHits.Inc()
}

// CacheMiss 记录弱引用缓存未命中
func (r *PrometheusReporter) CacheMiss() {
	r.cacheMisses.Inc()
}

// CacheEvicted 记录弱引用缓存条目被回收
func (r *PrometheusReporter) CacheEvicted() {
	r.cacheEvictions.Inc()
}

// resultLabel 执行结果标签
func resultLabel(failed bool) string {
	if failed {
		return "error"
	}
	return "ok"
}
