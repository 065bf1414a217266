// Package metrics 提供指标上报实现
//
// metrics 实现 interfaces.MetricsReporter 的两个版本:
//
//   - PrometheusReporter: 注册到 prometheus.Registerer 的生产实现
//   - NoopReporter: 空实现,指标禁用时注入,调用方无需判空
//
// 指标按子系统分组:
//
//	lifecycle_scope_*    作用域与守卫
//	lifecycle_cleanup_*  清理注册表与后台执行器
//	lifecycle_cache_*    弱引用缓存
//
// 全部上报方法非阻塞、并发安全。
package metrics
