package lifecycle

import (
	"github.com/dep2p/go-lifecycle/config"
	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	"github.com/dep2p/go-lifecycle/internal/core/scope"
	"github.com/dep2p/go-lifecycle/internal/core/weakcache"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              子系统状态
// ════════════════════════════════════════════════════════════════════════════

// SubsystemState 子系统状态
//
// 表示子系统在生命周期中的当前阶段。
type SubsystemState int

const (
	// StateIdle 空闲状态（已创建，未启动）
	StateIdle SubsystemState = iota

	// StateInitializing 初始化中（内部组件装配中）
	StateInitializing

	// StateRunning 运行中（正常工作状态）
	StateRunning

	// StateStopping 停止中（正在关闭组件）
	StateStopping

	// StateStopped 已停止（终态，不可重新启动）
	StateStopped
)

// String 返回状态的字符串表示
func (s SubsystemState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              核心类型别名
// ════════════════════════════════════════════════════════════════════════════

// 显式释放路径
type (
	// Scope 作用域，持有 LIFO 释放栈
	Scope = scope.Scope

	// Guard 释放守卫，承载单个释放动作
	Guard = scope.Guard

	// Tracker 作用域追踪器（作用域工厂与统计入口）
	Tracker = scope.Tracker
)

// 隐式安全网
type (
	// Registry 清理注册表接口
	Registry = pkgif.CleanupRegistry

	// Registration 清理注册句柄接口
	Registration = pkgif.Registration
)

// 弱引用容器
type (
	// KeyMap 键索引容器，按弱引用键关联元数据
	KeyMap[K any, V any] = weakcache.KeyMap[K, V]

	// Cache 值缓存，弱引用值加可选强引用保护层
	Cache[K comparable, V any] = weakcache.ValueCache[K, V]
)

// 宿主能力
type (
	// ReclaimNotifier 不可达通知原语接口
	ReclaimNotifier = pkgif.ReclaimNotifier

	// CancelFunc 取消一次不可达监视
	CancelFunc = pkgif.CancelFunc

	// ManualReclaim 手动触发的通知器，用于确定性测试
	ManualReclaim = reclaim.ManualNotifier
)

// 观测
type (
	// ErrorSink 清理失败上报接口
	ErrorSink = pkgif.ErrorSink

	// ErrorSinkFunc 函数式 ErrorSink 适配器
	ErrorSinkFunc = pkgif.ErrorSinkFunc

	// EvtCleanupRan 清理动作执行完毕事件
	EvtCleanupRan = types.EvtCleanupRan

	// EvtGuardReleased 守卫释放完毕事件
	EvtGuardReleased = types.EvtGuardReleased
)

// 状态与统计
type (
	// LifeState 释放单元生命周期状态（Armed/Releasing/Inert）
	LifeState = types.LifeState

	// Trigger 释放动作触发来源
	Trigger = types.Trigger

	// ReleaseError 携带被抑制错误链的复合释放错误
	ReleaseError = types.ReleaseError

	// ScopeStats 作用域统计快照
	ScopeStats = types.ScopeStats

	// RegistryStats 注册表统计快照
	RegistryStats = types.RegistryStats

	// CacheStats 弱引用容器统计快照
	CacheStats = types.CacheStats

	// SubsystemStats 子系统聚合统计
	SubsystemStats = types.SubsystemStats

	// ResourceID 作用域/守卫标识
	ResourceID = types.ResourceID

	// RegistrationID 注册标识
	RegistrationID = types.RegistrationID
)

// 生命周期状态常量再导出
const (
	// StateArmed 待命状态
	StateArmed = types.StateArmed

	// StateReleasing 释放中
	StateReleasing = types.StateReleasing

	// StateInert 终态
	StateInert = types.StateInert
)

// 触发来源常量再导出
const (
	// TriggerNone 尚未触发
	TriggerNone = types.TriggerNone

	// TriggerExplicit 显式调用触发
	TriggerExplicit = types.TriggerExplicit

	// TriggerScopeExit 作用域退出触发
	TriggerScopeExit = types.TriggerScopeExit

	// TriggerUnreachable 不可达检测触发
	TriggerUnreachable = types.TriggerUnreachable
)

// 缓存策略常量再导出（配合 WithCachePolicy 使用）
const (
	// CachePolicyNone 无强引用层
	CachePolicyNone = config.CachePolicyNone

	// CachePolicyLRU LRU 强引用层
	CachePolicyLRU = config.CachePolicyLRU

	// CachePolicyARC ARC 强引用层
	CachePolicyARC = config.CachePolicyARC
)

// 回收模式常量再导出（配合 WithReclaimMode 使用）
const (
	// ReclaimModeRuntime 运行时 GC 驱动
	ReclaimModeRuntime = config.ReclaimModeRuntime

	// ReclaimModeManual 手动触发
	ReclaimModeManual = config.ReclaimModeManual

	// ReclaimModeDisabled 关闭安全网（降级模式）
	ReclaimModeDisabled = config.ReclaimModeDisabled
)

// NewManualReclaim 创建手动触发的不可达通知器
//
// 配合 WithNotifier 使用，测试可以确定性地触发不可达清理，
// 不依赖垃圾回收时机：
//
//	manual := lifecycle.NewManualReclaim()
//	sys, _ := lifecycle.New(lifecycle.WithNotifier(manual))
//	// ... 注册之后
//	manual.TriggerAll()
func NewManualReclaim() *ManualReclaim {
	return reclaim.NewManual()
}

// NewReleaseError 构造复合释放错误
//
// 第一个失败为主错误，其余失败作为被抑制错误挂载。
// nil 参数会被过滤；全部为 nil 时返回 nil。
func NewReleaseError(primary error, suppressed ...error) *ReleaseError {
	return types.NewReleaseError(primary, suppressed...)
}
