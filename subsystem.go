package lifecycle

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/fx"

	"github.com/dep2p/go-lifecycle/config"
	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	"github.com/dep2p/go-lifecycle/internal/core/scope"
	"github.com/dep2p/go-lifecycle/internal/core/weakcache"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/lib/log"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

var logger = log.Logger("lifecycle")

// Subsystem 资源生命周期子系统
//
// Subsystem 是用户与 go-lifecycle 交互的主入口。
// 它是一个门面（Facade），聚合了所有内部组件：
//
//   - Tracker: 作用域工厂（显式路径）
//   - Registry: 清理注册表（隐式安全网）
//   - ReclaimNotifier: 宿主不可达通知能力
//   - 弱引用缓存工厂
//
// 同一进程可以持有多个 Subsystem 实例，各实例的注册表
// 与作用域互不可见，关闭一个不影响其他。
//
// 使用示例：
//
//	sys, err := lifecycle.New(
//	    lifecycle.WithPreset(lifecycle.PresetNameServer),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sys.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Close()
//
//	// 显式路径
//	sc, _ := sys.NewScope("request")
//	defer sc.Close()
//
//	// 安全网
//	reg, _ := sys.Register(conn, conn.teardown)
//	_ = reg
type Subsystem struct {
	// ────────────────────────────────────────────────────────────────────────
	// 配置和状态
	// ────────────────────────────────────────────────────────────────────────

	// opts 合成前的选项
	opts *options

	// cfg 合成后的最终配置
	cfg *config.Config

	// app Fx 应用
	app *fx.App

	// ────────────────────────────────────────────────────────────────────────
	// 核心组件（由 Fx 注入）
	// ────────────────────────────────────────────────────────────────────────

	// tracker 作用域追踪器
	tracker *scope.Tracker

	// registry 清理注册表
	registry pkgif.CleanupRegistry

	// notifier 不可达通知器
	notifier pkgif.ReclaimNotifier

	// cacheFactory 弱引用缓存工厂
	cacheFactory *weakcache.Factory

	// metrics 指标上报器
	metrics pkgif.MetricsReporter

	// ────────────────────────────────────────────────────────────────────────
	// 观测
	// ────────────────────────────────────────────────────────────────────────

	// observers 回调分发器（同时实现 ErrorSink）
	observers *observers

	// trackerCancel 解除守卫释放事件订阅
	trackerCancel func()

	// ────────────────────────────────────────────────────────────────────────
	// 生命周期状态
	// ────────────────────────────────────────────────────────────────────────

	mu      sync.RWMutex
	state   SubsystemState
	started bool
	closed  bool
}

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// New 创建子系统
//
// 创建但不启动，需要调用 Start() 启动。
// 通过 Option 函数配置。
//
// 示例：
//
//	sys, err := lifecycle.New(
//	    lifecycle.WithReclaimMode(config.ReclaimModeRuntime),
//	    lifecycle.WithMetrics(true),
//	)
func New(opts ...Option) (*Subsystem, error) {
	// 创建配置
	o := newOptions()

	// 应用选项
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	// 创建 Subsystem 实例
	sys := &Subsystem{
		opts:      o,
		state:     StateIdle,
		observers: newObservers(o.sinks),
	}

	// 构建 Fx 应用
	var err error
	sys.app, err = buildFxApp(o, sys)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	return sys, nil
}

// Start 快捷启动函数
//
// 创建子系统并立即启动。
// 等价于 New() + Start()。
func Start(ctx context.Context, opts ...Option) (*Subsystem, error) {
	sys, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := sys.Start(ctx); err != nil {
		return nil, err
	}
	return sys, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              组件访问
// ════════════════════════════════════════════════════════════════════════════

// State 返回子系统当前状态
func (s *Subsystem) State() SubsystemState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Registry 返回清理注册表
//
// 未启动时返回 nil。
func (s *Subsystem) Registry() Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Notifier 返回正在使用的不可达通知器
//
// 未启动时返回 nil。
func (s *Subsystem) Notifier() ReclaimNotifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifier
}

// ════════════════════════════════════════════════════════════════════════════
//                              显式路径
// ════════════════════════════════════════════════════════════════════════════

// NewScope 创建作用域
//
// 作用域持有 LIFO 释放栈：Close 时逆序触发全部守卫。
//
// 参数:
//   - name: 作用域名称，用于日志与事件
func (s *Subsystem) NewScope(name string) (*Scope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrSubsystemClosed
	}
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.tracker.NewScope(name), nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              隐式安全网
// ════════════════════════════════════════════════════════════════════════════

// Register 注册清理动作
//
// 对象不可达后 action 被自动执行；显式 RunNow 优先。
// action 必须幂等，且绝不允许捕获 watched 本身。
//
// 参数:
//   - watched: 被观察对象，必须是非空指针
//   - action: 清理动作
func (s *Subsystem) Register(watched any, action func() error) (Registration, error) {
	s.mu.RLock()
	reg := s.registry
	started, closed := s.started, s.closed
	s.mu.RUnlock()

	if closed {
		return nil, ErrSubsystemClosed
	}
	if !started {
		return nil, ErrNotStarted
	}
	return reg.Register(watched, action)
}

// ForceReclaim 主动触发一轮回收
//
// 运行时模式下触发一次垃圾回收，加速不可达对象被发现；
// 手动模式下触发全部待命监视并返回触发数量；
// 禁用模式下空操作。
//
// 返回:
//   - int: 本轮触发的监视数量（运行时模式恒为 0，触发是异步的)
func (s *Subsystem) ForceReclaim() int {
	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()

	if m, ok := n.(*reclaim.ManualNotifier); ok {
		return m.TriggerAll()
	}
	if n != nil && n.Name() == "runtime" {
		runtime.GC()
	}
	return 0
}

// ════════════════════════════════════════════════════════════════════════════
//                              统计
// ════════════════════════════════════════════════════════════════════════════

// Stats 返回子系统聚合统计快照
func (s *Subsystem) Stats() (SubsystemStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return types.SubsystemStats{}, ErrSubsystemClosed
	}
	if !s.started {
		return types.SubsystemStats{}, ErrNotStarted
	}
	return types.SubsystemStats{
		Scope:    s.tracker.Stats(),
		Registry: s.registry.Stats(),
	}, nil
}
