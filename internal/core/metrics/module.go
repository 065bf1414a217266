package metrics

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

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Reporter pkgif.MetricsReporter
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideReporter),
	)
}

// ProvideReporter 根据配置提供指标上报器
//
// 指标默认禁用:启用会注册到全局 prometheus 注册器,
// 由配置显式打开。
func ProvideReporter(p Params) Result {
	if p.UnifiedCfg == nil || !p.UnifiedCfg.Metrics.Enabled {
		return Result{Reporter: NewNoop()}
	}
	return Result{
		Reporter: NewPrometheusReporter(nil, p.UnifiedCfg.Metrics.Namespace),
	}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "metrics"
	// Description 模块描述
	Description = "指标上报模块，提供 Prometheus 与空实现两种上报器"
)
