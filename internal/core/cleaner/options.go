package cleaner

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// ============================================================================
//                              默认值
// ============================================================================

const (
	// DefaultShards 默认分片数
	DefaultShards = 16

	// DefaultQueueSize 默认执行器队列容量
	DefaultQueueSize = 256

	// DefaultMaxConcurrent 默认最大并发执行数
	DefaultMaxConcurrent = 4
)

// options 注册表配置
type options struct {
	shards          int
	queueSize       int
	maxConcurrent   int
	reclaimInterval time.Duration

	clk      clock.Clock
	notifier pkgif.ReclaimNotifier
	sink     pkgif.ErrorSink
	metrics  pkgif.MetricsReporter
}

// defaultOptions 返回默认配置
func defaultOptions() options {
	return options{
		shards:        DefaultShards,
		queueSize:     DefaultQueueSize,
		maxConcurrent: DefaultMaxConcurrent,
		clk:           clock.New(),
		notifier:      reclaim.Runtime(),
	}
}

// ============================================================================
//                              选项函数
// ============================================================================

// Option 注册表配置选项
type Option func(*options)

// WithShards 设置分片数
//
// 参数:
//   - n: 分片数,非正值时保持默认
func WithShards(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.shards = n
		}
	}
}

// WithQueueSize 设置执行器队列容量
//
// 参数:
//   - n: 队列容量,非正值时保持默认
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithMaxConcurrent 设置最大并发执行数
//
// 参数:
//   - n: 并发上限,非正值时保持默认
func WithMaxConcurrent(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxConcurrent = n
		}
	}
}

// WithReclaimInterval 设置垃圾回收助推周期
//
// 周期大于零时执行器按周期主动触发一次垃圾回收,
// 压缩不可达对象被发现的延迟;零值关闭助推。
//
// 参数:
//   - d: 助推周期
func WithReclaimInterval(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.reclaimInterval = d
		}
	}
}

// WithClock 设置时钟
//
// 测试中注入 mock 时钟以精确控制助推节奏。
//
// 参数:
//   - clk: 时钟实现
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clk = clk
		}
	}
}

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

// WithErrorSink 设置隐式路径错误接收器
//
// 参数:
//   - s: 错误接收器实现
func WithErrorSink(s pkgif.ErrorSink) Option {
	return func(o *options) {
		o.sink = s
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
