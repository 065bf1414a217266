// Package types 定义 go-lifecycle 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              ID 相关错误
// ============================================================================

var (
	// ErrInvalidRegistrationID 无效的注册标识
	ErrInvalidRegistrationID = errors.New("invalid registration ID: must be Base58 of 8 bytes")
)

// ============================================================================
//                              作用域相关错误
// ============================================================================

var (
	// ErrScopeClosed 作用域已关闭
	ErrScopeClosed = errors.New("scope already closed")

	// ErrNilRelease 释放动作为空
	ErrNilRelease = errors.New("nil release func")

	// ErrGuardLimitReached 单作用域 Guard 数量达到上限
	ErrGuardLimitReached = errors.New("max guards per scope reached")
)

// ============================================================================
//                              注册表相关错误
// ============================================================================

var (
	// ErrDoubleRegistration 同一对象重复注册
	//
	// 同一个存活的被观察对象只允许关联一个清理动作。
	ErrDoubleRegistration = errors.New("watched object already registered")

	// ErrRegistryClosed 注册表已关闭
	ErrRegistryClosed = errors.New("cleanup registry closed")

	// ErrNilWatched 被观察对象为空
	ErrNilWatched = errors.New("nil watched object")

	// ErrNotPointer 被观察对象不是指针
	//
	// 不可达检测以堆对象为粒度，只接受指针类型。
	ErrNotPointer = errors.New("watched object must be a pointer")

	// ErrNilAction 清理动作为空
	ErrNilAction = errors.New("nil cleanup action")
)

// ============================================================================
//                              回收通知相关错误
// ============================================================================

var (
	// ErrUnknownReclaimMode 未知的回收通知模式
	ErrUnknownReclaimMode = errors.New("unknown reclaim mode")
)

// ============================================================================
//                              弱引用缓存相关错误
// ============================================================================

var (
	// ErrNilKey 键为空指针
	ErrNilKey = errors.New("nil key pointer")

	// ErrNilValue 值为空指针
	ErrNilValue = errors.New("nil value pointer")
)
