package reclaim

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-lifecycle/config"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
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

	Notifier pkgif.ReclaimNotifier
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("reclaim",
		fx.Provide(ProvideNotifier),
	)
}

// ProvideNotifier 根据配置提供不可达通知器
func ProvideNotifier(p Params) (Result, error) {
	mode := config.ReclaimModeRuntime
	if p.UnifiedCfg != nil {
		mode = p.UnifiedCfg.Reclaim.Mode
	}

	n, err := NewNotifier(mode)
	if err != nil {
		return Result{}, err
	}
	return Result{Notifier: n}, nil
}

// NewNotifier 按模式名创建通知器
//
// 参数:
//   - mode: 模式名称,支持 runtime/manual/disabled
//
// 返回:
//   - interfaces.ReclaimNotifier: 对应实现
//   - error: 模式未知时返回 types.ErrUnknownReclaimMode
func NewNotifier(mode string) (pkgif.ReclaimNotifier, error) {
	switch mode {
	case config.ReclaimModeRuntime:
		return Runtime(), nil
	case config.ReclaimModeManual:
		return NewManual(), nil
	case config.ReclaimModeDisabled:
		return Disabled(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownReclaimMode, mode)
	}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "reclaim"
	// Description 模块描述
	Description = "不可达回收通知模块，封装宿主运行时的对象回收回调能力"
)
