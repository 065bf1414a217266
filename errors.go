package lifecycle

import (
	"errors"

	"github.com/dep2p/go-lifecycle/pkg/types"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 子系统生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 子系统未启动
	ErrNotStarted = errors.New("subsystem not started")

	// ErrAlreadyStarted 子系统已启动
	ErrAlreadyStarted = errors.New("subsystem already started")

	// ErrSubsystemClosed 子系统已关闭
	//
	// 子系统是一次性的：Stop/Close 之后不能再次 Start。
	ErrSubsystemClosed = errors.New("subsystem closed")
)

// 核心错误再导出
//
// 守卫与注册表的哨兵错误定义在 pkg/types 中，
// 这里再导出以便调用方只依赖根包即可做 errors.Is 判断。
var (
	// ErrScopeClosed 作用域已关闭，不再接受新守卫
	ErrScopeClosed = types.ErrScopeClosed

	// ErrNilRelease 释放函数为空
	ErrNilRelease = types.ErrNilRelease

	// ErrGuardLimitReached 达到单作用域守卫数量上限
	ErrGuardLimitReached = types.ErrGuardLimitReached

	// ErrDoubleRegistration 同一对象存在待命注册
	ErrDoubleRegistration = types.ErrDoubleRegistration

	// ErrRegistryClosed 注册表已关闭，不再接受新注册
	ErrRegistryClosed = types.ErrRegistryClosed

	// ErrNilWatched 被观察对象为空
	ErrNilWatched = types.ErrNilWatched

	// ErrNotPointer 被观察对象不是指针
	ErrNotPointer = types.ErrNotPointer

	// ErrNilAction 清理动作为空
	ErrNilAction = types.ErrNilAction
)
