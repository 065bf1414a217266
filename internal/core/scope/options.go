package scope

import pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"

// ============================================================================
//                              追踪器选项
// ============================================================================

// Option 追踪器配置选项
type Option func(*Tracker)

// WithMetrics 设置指标上报器
//
// 参数:
//   - m: 指标上报器实现
func WithMetrics(m pkgif.MetricsReporter) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// WithMaxGuards 设置单作用域守卫数上限
//
// 超出上限的 Defer/Acquire 返回 types.ErrGuardLimitReached,
// 用于尽早暴露"只进不出"的泄漏型作用域。
//
// 参数:
//   - n: 上限,0 表示不限制
func WithMaxGuards(n int) Option {
	return func(t *Tracker) {
		if n >= 0 {
			t.maxGuards = n
		}
	}
}
