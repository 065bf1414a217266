package scope

import (
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

	UnifiedCfg *config.Config        `optional:"true"`
	Metrics    pkgif.MetricsReporter `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Tracker *Tracker
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("scope",
		fx.Provide(ProvideTracker),
	)
}

// ProvideTracker 根据配置提供作用域追踪器
func ProvideTracker(p Params) Result {
	var opts []Option
	if p.UnifiedCfg != nil {
		opts = append(opts, WithMaxGuards(p.UnifiedCfg.Scope.MaxGuardsPerScope))
	}
	if p.Metrics != nil {
		opts = append(opts, WithMetrics(p.Metrics))
	}
	return Result{Tracker: NewTracker(opts...)}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "scope"
	// Description 模块描述
	Description = "作用域守卫模块，提供逆序回卷与抑制链错误合并的显式释放路径"
)
