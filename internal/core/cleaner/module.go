package cleaner

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-lifecycle/config"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
type Params struct {
	fx.In

	Notifier   pkgif.ReclaimNotifier
	UnifiedCfg *config.Config        `optional:"true"`
	Sink       pkgif.ErrorSink       `optional:"true"`
	Metrics    pkgif.MetricsReporter `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Registry *Registry
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("cleaner",
		fx.Provide(ProvideRegistry),
		fx.Provide(func(r *Registry) pkgif.CleanupRegistry { return r }),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideRegistry 根据配置提供清理注册表
func ProvideRegistry(p Params) Result {
	opts := []Option{WithNotifier(p.Notifier)}
	if p.UnifiedCfg != nil {
		c := p.UnifiedCfg.Cleanup
		opts = append(opts,
			WithShards(c.Shards),
			WithQueueSize(c.QueueSize),
			WithMaxConcurrent(c.MaxConcurrent),
			WithReclaimInterval(c.ReclaimInterval.Duration()),
		)
	}
	if p.Sink != nil {
		opts = append(opts, WithErrorSink(p.Sink))
	}
	if p.Metrics != nil {
		opts = append(opts, WithMetrics(p.Metrics))
	}
	return Result{Registry: New(opts...)}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Registry *Registry
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 后台执行器随 New 一起启动,无需额外动作
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.Registry.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "cleaner"
	// Description 模块描述
	Description = "清理注册表模块，提供显式优先、不可达兜底的至多一次清理执行"
)
