// Package interfaces 定义 go-lifecycle 公共接口
//
// 本文件定义隐式清理路径的错误接收接口。
package interfaces

import "github.com/dep2p/go-lifecycle/pkg/types"

// ErrorSink 定义隐式路径错误接收器接口
//
// 不可达触发的清理没有同步等待的调用方，其失败无处返回；
// 注册表把失败（含被恢复的 panic）包装为事件投递给接收器。
// 接收器实现必须快速返回且不得 panic，阻塞会拖慢后台执行器。
type ErrorSink interface {
	// ReportCleanupError 上报一次清理失败
	ReportCleanupError(evt types.EvtCleanupRan)
}

// ErrorSinkFunc 函数适配器，把普通函数适配为 ErrorSink
type ErrorSinkFunc func(evt types.EvtCleanupRan)

// ReportCleanupError 实现 ErrorSink 接口
func (f ErrorSinkFunc) ReportCleanupError(evt types.EvtCleanupRan) {
	f(evt)
}
