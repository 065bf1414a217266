// Package interfaces 定义 go-lifecycle 公共接口
//
// 本文件定义指标上报接口。
package interfaces

import "github.com/dep2p/go-lifecycle/pkg/types"

// MetricsReporter 定义指标上报接口
//
// 所有方法都必须是非阻塞、并发安全的；实现不得 panic。
// 指标被禁用时注入空实现，调用方无需判空。
type MetricsReporter interface {
	// ScopeOpened 记录作用域打开
	ScopeOpened()

	// ScopeClosed 记录作用域关闭
	ScopeClosed()

	// GuardArmed 记录 Guard 进入待命
	GuardArmed()

	// GuardReleased 记录 Guard 完成释放
	GuardReleased(trigger types.Trigger, failed bool)

	// CleanupRegistered 记录清理注册
	CleanupRegistered()

	// CleanupRun 记录清理动作执行
	CleanupRun(trigger types.Trigger, failed bool)

	// SweeperQueueDepth 记录后台执行器当前队列深度
	SweeperQueueDepth(depth int)

	// CacheHit 记录弱引用缓存命中
	CacheHit()

	// CacheMiss 记录弱引用缓存未命中
	CacheMiss()

	// CacheEvicted 记录弱引用缓存条目被回收
	CacheEvicted()
}
