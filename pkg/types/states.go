// Package types 定义 go-lifecycle 的基础类型
//
// 本文件定义生命周期状态机与触发来源枚举。
package types

// ============================================================================
//                              LifeState - 生命周期状态
// ============================================================================

// LifeState 资源释放单元（Guard / Registration）的生命周期状态
//
// 状态机：
//
//	Armed ──► Releasing ──► Inert
//
// Armed 是初始状态（已获取/已注册，清理待执行）；
// Releasing 表示释放动作正在执行（由唯一触发者推进）；
// Inert 是终态，后续任何触发都是空操作，绝不回到 Armed。
type LifeState int32

const (
	// StateArmed 待命状态（已获取/已注册，清理待执行）
	StateArmed LifeState = iota

	// StateReleasing 释放中（释放动作正在执行）
	StateReleasing

	// StateInert 终态（释放动作已执行完毕或已被放弃）
	StateInert
)

// String 返回状态的字符串表示
func (s LifeState) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateReleasing:
		return "releasing"
	case StateInert:
		return "inert"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              Trigger - 触发来源
// ============================================================================

// Trigger 释放动作的触发来源
//
// 每个释放单元最多被一个来源触发；竞争由状态机的
// 原子推进裁决，失败方观察到非 Armed 状态后空操作返回。
type Trigger int32

const (
	// TriggerNone 尚未触发
	TriggerNone Trigger = iota

	// TriggerExplicit 显式调用（Guard.Release / Registration.RunNow）
	TriggerExplicit

	// TriggerScopeExit 作用域退出（Scope.Close 逆序回卷）
	TriggerScopeExit

	// TriggerUnreachable 不可达检测（宿主回收通知，尽力而为）
	TriggerUnreachable
)

// String 返回触发来源的字符串表示
func (t Trigger) String() string {
	switch t {
	case TriggerExplicit:
		return "explicit"
	case TriggerScopeExit:
		return "scope_exit"
	case TriggerUnreachable:
		return "unreachable"
	default:
		return "none"
	}
}
