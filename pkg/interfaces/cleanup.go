// Package interfaces 定义 go-lifecycle 公共接口
//
// 本文件定义 CleanupRegistry 接口，提供安全网清理注册。
package interfaces

import "github.com/dep2p/go-lifecycle/pkg/types"

// CleanupRegistry 定义清理注册表接口
//
// 注册表把"被观察对象"与"清理动作"关联起来：动作恰好执行一次，
// 由显式调用或对象不可达触发，以先到者为准。注册表绝不强持有
// 被观察对象，注册本身不会阻止对象被回收。
//
// 隐式路径是尽力而为的安全网：宿主可能在执行任何待定清理之前
// 终止进程。对正确性有要求的状态（持久化数据、锁）必须使用
// 显式释放路径（Scope / Guard），绝不能依赖安全网。
type CleanupRegistry interface {
	// Register 注册清理动作
	//
	// 参数:
	//   - watched: 被观察对象，必须是非空指针
	//   - action: 清理动作；幂等，且绝不允许捕获 watched 本身
	//
	// 返回:
	//   - Registration: 注册句柄
	//   - error: watched 重复注册时返回 types.ErrDoubleRegistration
	Register(watched any, action func() error) (Registration, error)

	// Stats 返回注册表统计快照
	Stats() types.RegistryStats

	// Len 返回当前待命的注册数
	Len() int

	// Close 关闭注册表
	//
	// 停止后台执行器并解除全部不可达监视；排队中尚未执行的
	// 隐式清理被放弃（与进程退出语义一致）。Close 幂等。
	Close() error
}

// Registration 定义清理注册句柄接口
//
// RunNow 是调用方唯一的驱动入口，其余触发均由宿主驱动。
type Registration interface {
	// ID 返回注册标识
	ID() types.RegistrationID

	// RunNow 立即执行清理动作
	//
	// 幂等：首次调用执行动作并返回其错误；动作已被任一
	// 路径执行过时空操作返回 nil（"已释放"不是错误）。
	RunNow() error

	// State 返回当前生命周期状态
	State() types.LifeState

	// Trigger 返回实际发生的触发来源（未触发时为 TriggerNone）
	Trigger() types.Trigger
}
