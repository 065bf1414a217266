package weakcache

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-lifecycle/config"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// ============================================================================
// 缓存工厂
// ============================================================================

// Factory 弱引用缓存工厂
//
// 缓存容器是泛型类型，无法直接经由依赖注入提供实例。
// Factory 持有已解析的公共选项（通知器、指标、强引用层策略），
// 调用方用它创建任意键值类型的容器:
//
//	m := weakcache.FactoryKeyMap[session, meta](f)
//	c, err := weakcache.FactoryValueCache[string, result](f)
type Factory struct {
	opts []Option
}

// NewFactory 创建缓存工厂
//
// 参数:
//   - opts: 工厂级公共选项,创建容器时可再追加覆盖
func NewFactory(opts ...Option) *Factory {
	return &Factory{opts: opts}
}

// Options 返回工厂级公共选项与附加选项的组合
//
// 附加选项排在公共选项之后,可覆盖公共选项。
func (f *Factory) Options(extra ...Option) []Option {
	if f == nil {
		return extra
	}
	combined := make([]Option, 0, len(f.opts)+len(extra))
	combined = append(combined, f.opts...)
	combined = append(combined, extra...)
	return combined
}

// FactoryKeyMap 使用工厂配置创建键索引容器
func FactoryKeyMap[K any, V any](f *Factory, extra ...Option) *KeyMap[K, V] {
	return NewKeyMap[K, V](f.Options(extra...)...)
}

// FactoryValueCache 使用工厂配置创建值缓存
func FactoryValueCache[K comparable, V any](f *Factory, extra ...Option) (*ValueCache[K, V], error) {
	return NewValueCache[K, V](f.Options(extra...)...)
}

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
type Params struct {
	fx.In

	Notifier   pkgif.ReclaimNotifier
	UnifiedCfg *config.Config        `optional:"true"`
	Metrics    pkgif.MetricsReporter `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Factory *Factory
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("weakcache",
		fx.Provide(ProvideFactory),
	)
}

// ProvideFactory 根据配置提供缓存工厂
func ProvideFactory(p Params) Result {
	opts := []Option{WithNotifier(p.Notifier)}
	if p.UnifiedCfg != nil {
		c := p.UnifiedCfg.Cache
		opts = append(opts,
			WithPolicy(c.Policy),
			WithStrongCapacity(c.StrongCapacity),
		)
	}
	if p.Metrics != nil {
		opts = append(opts, WithMetrics(p.Metrics))
	}
	return Result{Factory: NewFactory(opts...)}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "weakcache"
	// Description 模块描述
	Description = "弱引用缓存模块，提供键索引容器与带强引用层的值缓存"
)
