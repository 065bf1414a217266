package lifecycle

import (
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-lifecycle/config"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 预设配置
	preset string

	// 完整配置（WithConfig 注入，优先级最高的基底）
	userConfig *config.Config

	// 回收通知器覆盖（绕过配置中的模式选择）
	notifier pkgif.ReclaimNotifier

	// 清理失败上报
	sinks []pkgif.ErrorSink

	// 字段级覆盖
	reclaimMode       *string
	reclaimInterval   *time.Duration
	maxGuardsPerScope *int
	cachePolicy       *string
	strongCapacity    *int
	metricsEnabled    *bool
	metricsNamespace  *string
	logLevel          *string

	// 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toConfig 合成最终配置
//
// 优先级从低到高：默认值 < 预设 < WithConfig < 字段级选项。
func (o *options) toConfig() (*config.Config, error) {
	cfg := config.NewConfig()

	// 基底: 用户完整配置
	if o.userConfig != nil {
		cfg = config.CloneConfig(o.userConfig)
	}

	// 应用预设
	if o.preset != "" {
		if err := config.ApplyPreset(cfg, o.preset); err != nil {
			return nil, err
		}
	}

	// 覆盖: 回收模式
	if o.reclaimMode != nil {
		cfg.Reclaim.Mode = *o.reclaimMode
	}

	// 覆盖: 回收巡检间隔
	if o.reclaimInterval != nil {
		cfg.Cleanup.ReclaimInterval = config.Duration(*o.reclaimInterval)
	}

	// 覆盖: 守卫上限
	if o.maxGuardsPerScope != nil {
		cfg.Scope.MaxGuardsPerScope = *o.maxGuardsPerScope
	}

	// 覆盖: 缓存策略
	if o.cachePolicy != nil {
		cfg.Cache.Policy = *o.cachePolicy
	}
	if o.strongCapacity != nil {
		cfg.Cache.StrongCapacity = *o.strongCapacity
	}

	// 覆盖: 指标
	if o.metricsEnabled != nil {
		cfg.Metrics.Enabled = *o.metricsEnabled
	}
	if o.metricsNamespace != nil {
		cfg.Metrics.Namespace = *o.metricsNamespace
	}

	// 覆盖: 日志级别
	if o.logLevel != nil {
		cfg.Log.Level = *o.logLevel
	}

	return cfg, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置选项
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 使用完整配置
//
// 传入的配置会被克隆，后续的字段级选项在克隆上生效。
//
// 示例：
//
//	cfg := config.NewConfig()
//	cfg.Cleanup.MaxConcurrent = 8
//	sys, err := lifecycle.New(lifecycle.WithConfig(cfg))
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		o.userConfig = cfg
		return nil
	}
}

// WithConfigJSON 从 JSON 数据加载完整配置
//
// 等价于 config.FromJSON + WithConfig。
func WithConfigJSON(data []byte) Option {
	return func(o *options) error {
		cfg, err := config.FromJSON(data)
		if err != nil {
			return err
		}
		o.userConfig = cfg
		return nil
	}
}

// WithPreset 使用预设配置
//
// 支持的预设见 AvailablePresets()。
//
// 示例：
//
//	sys, err := lifecycle.New(lifecycle.WithPreset(lifecycle.PresetNameServer))
func WithPreset(name string) Option {
	return func(o *options) error {
		o.preset = name
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              回收选项
// ════════════════════════════════════════════════════════════════════════════

// WithReclaimMode 设置不可达通知模式
//
// 可选值：
//   - config.ReclaimModeRuntime: 跟随运行时垃圾回收（默认）
//   - config.ReclaimModeManual: 手动触发，用于测试
//   - config.ReclaimModeDisabled: 关闭安全网，仅显式路径可用
func WithReclaimMode(mode string) Option {
	return func(o *options) error {
		o.reclaimMode = &mode
		return nil
	}
}

// WithNotifier 使用自定义不可达通知器
//
// 绕过配置中的模式选择，直接注入通知器实例。
// 典型用法是注入 NewManualReclaim() 以便测试确定性触发。
func WithNotifier(n ReclaimNotifier) Option {
	return func(o *options) error {
		if n == nil {
			return fmt.Errorf("notifier is nil")
		}
		o.notifier = n
		return nil
	}
}

// WithReclaimInterval 设置回收巡检间隔
//
// 大于 0 时注册表周期性触发一次回收巡检，
// 缩短不可达对象被发现的延迟。
func WithReclaimInterval(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("reclaim interval must be non-negative")
		}
		o.reclaimInterval = &d
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              作用域与缓存选项
// ════════════════════════════════════════════════════════════════════════════

// WithMaxGuardsPerScope 设置单个作用域的最大守卫数
//
// 0 表示不限制。
func WithMaxGuardsPerScope(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("max guards per scope must be non-negative")
		}
		o.maxGuardsPerScope = &n
		return nil
	}
}

// WithCachePolicy 设置弱引用缓存的强引用层策略
//
// 参数:
//   - policy: config.CachePolicyNone / CachePolicyLRU / CachePolicyARC
//   - capacity: 强引用层容量，policy 为 none 时忽略
func WithCachePolicy(policy string, capacity int) Option {
	return func(o *options) error {
		o.cachePolicy = &policy
		if capacity > 0 {
			o.strongCapacity = &capacity
		}
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              观测选项
// ════════════════════════════════════════════════════════════════════════════

// WithErrorSink 注册清理失败上报
//
// 安全网路径的清理失败没有调用方可以接收错误，
// 通过 sink 上报。可多次使用，全部 sink 都会收到事件。
func WithErrorSink(sink ErrorSink) Option {
	return func(o *options) error {
		if sink == nil {
			return fmt.Errorf("error sink is nil")
		}
		o.sinks = append(o.sinks, sink)
		return nil
	}
}

// WithMetrics 设置是否启用 Prometheus 指标
func WithMetrics(enabled bool) Option {
	return func(o *options) error {
		o.metricsEnabled = &enabled
		return nil
	}
}

// WithMetricsNamespace 设置指标命名空间
func WithMetricsNamespace(ns string) Option {
	return func(o *options) error {
		o.metricsNamespace = &ns
		return nil
	}
}

// WithLogLevel 设置日志级别
//
// 可选值：debug / info / warn / error。
func WithLogLevel(level string) Option {
	return func(o *options) error {
		o.logLevel = &level
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              扩展选项
// ════════════════════════════════════════════════════════════════════════════

// WithFxOptions 注入用户自定义 Fx 选项
//
// 高级用法：向内部依赖注入容器追加模块或装饰器。
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
