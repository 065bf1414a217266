package weakcache

import (
	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// ============================================================================
//                              强引用层策略
// ============================================================================

const (
	// PolicyNone 不启用强引用层
	PolicyNone = "none"

	// PolicyLRU 最近最少使用淘汰
	PolicyLRU = "lru"

	// PolicyARC 自适应替换缓存淘汰
	PolicyARC = "arc"
)

// DefaultStrongCapacity 默认强引用层容量
const DefaultStrongCapacity = 128

// options 容器配置
type options struct {
	notifier pkgif.ReclaimNotifier
	metrics  pkgif.MetricsReporter

	policy         string
	strongCapacity int
}

// defaultOptions 返回默认配置
func defaultOptions() options {
	return options{
		notifier:       reclaim.Runtime(),
		policy:         PolicyNone,
		strongCapacity: DefaultStrongCapacity,
	}
}

// ============================================================================
//                              选项函数
// ============================================================================

// Option 容器配置选项
type Option func(*options)

// WithNotifier 设置不可达通知器
//
// 参数:
//   - n: 通知器实现,默认为 reclaim.Runtime()
func WithNotifier(n pkgif.ReclaimNotifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithMetrics 设置指标上报器
//
// 参数:
//   - m: 指标上报器实现
func WithMetrics(m pkgif.MetricsReporter) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPolicy 设置强引用层淘汰策略
//
// 仅 ValueCache 使用;KeyMap 忽略本选项。
//
// 参数:
//   - policy: PolicyNone / PolicyLRU / PolicyARC
func WithPolicy(policy string) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithStrongCapacity 设置强引用层容量
//
// 仅 ValueCache 使用;KeyMap 忽略本选项。
//
// 参数:
//   - n: 容量,非正值时保持默认
func WithStrongCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.strongCapacity = n
		}
	}
}
