// Package types 定义 go-lifecycle 的公共类型
//
// 本文件定义事件相关类型。
package types

import (
	"time"
)

// ============================================================================
//                              清理事件
// ============================================================================

// EvtCleanupRan 清理动作执行事件
//
// 每次清理动作执行完毕（无论成败）都会产生一次该事件，
// 投递给错误接收器与观测回调。
type EvtCleanupRan struct {
	// ID 注册标识
	ID RegistrationID

	// Trigger 触发来源（explicit / unreachable）
	Trigger Trigger

	// Err 清理动作返回的错误（成功时为 nil；panic 被恢复后包装为错误）
	Err error

	// Elapsed 动作执行耗时
	Elapsed time.Duration

	// Time 事件时间戳
	Time time.Time
}

// Failed 返回清理是否失败
func (e EvtCleanupRan) Failed() bool {
	return e.Err != nil
}

// ============================================================================
//                              Guard 事件
// ============================================================================

// EvtGuardReleased Guard 释放事件
//
// Guard 完成释放（显式调用或作用域回卷）后产生，
// 投递给 Tracker 上注册的观测回调，用于释放轨迹追踪。
type EvtGuardReleased struct {
	// Resource 关联的资源标识
	Resource ResourceID

	// Name Guard 名称（获取时指定）
	Name string

	// Trigger 触发来源（explicit / scope_exit）
	Trigger Trigger

	// Err 释放动作返回的错误（成功时为 nil）
	Err error

	// Elapsed 释放动作执行耗时
	Elapsed time.Duration

	// Time 事件时间戳
	Time time.Time
}

// Failed 返回释放是否失败
func (e EvtGuardReleased) Failed() bool {
	return e.Err != nil
}
