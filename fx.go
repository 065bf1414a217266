package lifecycle

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-lifecycle/config"
	"github.com/dep2p/go-lifecycle/pkg/lib/log"

	// Core Layer
	"github.com/dep2p/go-lifecycle/internal/core/cleaner"
	"github.com/dep2p/go-lifecycle/internal/core/metrics"
	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	"github.com/dep2p/go-lifecycle/internal/core/scope"
	"github.com/dep2p/go-lifecycle/internal/core/weakcache"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 组装所有内部模块：
//   - 基础组件：Metrics → Reclaim → Scope → Cleaner → WeakCache
//   - 扩展模块：用户自定义 Fx 选项
//
// 加载顺序（按依赖）：
//  1. Metrics: 指标上报器（其余模块可选依赖）
//  2. Reclaim: 不可达通知器（Cleaner 与 WeakCache 依赖）
//  3. Scope / Cleaner / WeakCache: 显式路径、安全网、弱引用容器

var fxLogger = log.Logger("lifecycle/fx")

func buildFxApp(o *options, sys *Subsystem) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置合成与验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	cfg, err := o.toConfig()
	if err != nil {
		return nil, fmt.Errorf("compose config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := config.ValidateCompatibility(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	sys.cfg = cfg

	modules := []fx.Option{
		// 配置注入
		fx.Supply(cfg),

		// 指标（默认空实现，由配置开启 Prometheus）
		metrics.Module(),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 不可达通知器
	// ════════════════════════════════════════════════════════════════════════
	if o.notifier != nil {
		// 用户注入的通知器优先于配置中的模式选择
		fxLogger.Debug("使用用户注入的通知器", "name", o.notifier.Name())
		notifier := o.notifier
		modules = append(modules, fx.Provide(func() pkgif.ReclaimNotifier {
			return notifier
		}))
	} else {
		modules = append(modules, reclaim.Module())
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 清理失败上报
	// ════════════════════════════════════════════════════════════════════════
	// 回调分发器兼任 ErrorSink，安全网清理失败经由它送达订阅者
	modules = append(modules, fx.Provide(func() pkgif.ErrorSink {
		return sys.observers
	}))

	// ════════════════════════════════════════════════════════════════════════
	// 4. 核心模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		scope.Module(),     // 作用域与守卫（显式路径）
		cleaner.Module(),   // 清理注册表（隐式安全网）
		weakcache.Module(), // 弱引用缓存工厂
	)

	// ════════════════════════════════════════════════════════════════════════
	// 5. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 6. Subsystem 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectSubsystemComponents(sys)))

	// ════════════════════════════════════════════════════════════════════════
	// 7. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.NopLogger,
	)

	app := fx.New(modules...)
	return app, nil
}

// ════════════════════════════════════════════════════════════════════════════
// Subsystem 组件注入
// ════════════════════════════════════════════════════════════════════════════

// subsystemInjectParams Subsystem 组件注入参数
type subsystemInjectParams struct {
	fx.In

	Tracker  *scope.Tracker
	Registry pkgif.CleanupRegistry
	Notifier pkgif.ReclaimNotifier
	Factory  *weakcache.Factory
	Metrics  pkgif.MetricsReporter `optional:"true"`
}

// injectSubsystemComponents 创建 Subsystem 组件注入函数
func injectSubsystemComponents(sys *Subsystem) interface{} {
	return func(params subsystemInjectParams) {
		// 核心组件
		sys.tracker = params.Tracker
		sys.registry = params.Registry
		sys.notifier = params.Notifier
		sys.cacheFactory = params.Factory

		// 可选组件
		sys.metrics = params.Metrics
	}
}
