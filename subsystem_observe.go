package lifecycle

import (
	"sync"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              回调分发器
// ════════════════════════════════════════════════════════════════════════════

// observers 回调分发器
//
// 同时实现 pkgif.ErrorSink：注册表的安全网清理失败经由
// 本分发器送达全部订阅者与 WithErrorSink 注入的 sink。
// 守卫释放事件由 Tracker 订阅接入（见 Start）。
type observers struct {
	mu sync.RWMutex

	// cleanupCallbacks 清理失败回调
	cleanupCallbacks map[uint64]func(types.EvtCleanupRan)

	// guardCallbacks 守卫释放回调
	guardCallbacks map[uint64]func(types.EvtGuardReleased)

	// nextID 回调句柄分配器
	nextID uint64

	// sinks WithErrorSink 注入的上报目标
	sinks []pkgif.ErrorSink
}

var _ pkgif.ErrorSink = (*observers)(nil)

// newObservers 创建回调分发器
func newObservers(sinks []pkgif.ErrorSink) *observers {
	return &observers{
		cleanupCallbacks: make(map[uint64]func(types.EvtCleanupRan)),
		guardCallbacks:   make(map[uint64]func(types.EvtGuardReleased)),
		sinks:            sinks,
	}
}

// ReportCleanupError 实现 pkgif.ErrorSink
//
// 在独立 goroutine 中分发，不阻塞清理工作协程。
func (o *observers) ReportCleanupError(evt types.EvtCleanupRan) {
	o.mu.RLock()
	cbs := make([]func(types.EvtCleanupRan), 0, len(o.cleanupCallbacks)+len(o.sinks))
	for _, cb := range o.cleanupCallbacks {
		cbs = append(cbs, cb)
	}
	for _, sink := range o.sinks {
		cbs = append(cbs, sink.ReportCleanupError)
	}
	o.mu.RUnlock()

	if len(cbs) == 0 {
		return
	}
	go func() {
		for _, cb := range cbs {
			cb(evt)
		}
	}()
}

// guardReleased 分发守卫释放事件
//
// 由 Tracker 在释放方 goroutine 调用，同样异步分发。
func (o *observers) guardReleased(evt types.EvtGuardReleased) {
	o.mu.RLock()
	cbs := make([]func(types.EvtGuardReleased), 0, len(o.guardCallbacks))
	for _, cb := range o.guardCallbacks {
		cbs = append(cbs, cb)
	}
	o.mu.RUnlock()

	if len(cbs) == 0 {
		return
	}
	go func() {
		for _, cb := range cbs {
			cb(evt)
		}
	}()
}

// onCleanupFailure 注册清理失败回调
func (o *observers) onCleanupFailure(fn func(types.EvtCleanupRan)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.cleanupCallbacks[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.cleanupCallbacks, id)
		o.mu.Unlock()
	}
}

// onGuardReleased 注册守卫释放回调
func (o *observers) onGuardReleased(fn func(types.EvtGuardReleased)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.guardCallbacks[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.guardCallbacks, id)
		o.mu.Unlock()
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              Subsystem 回调注册
// ════════════════════════════════════════════════════════════════════════════

// OnCleanupFailure 注册清理失败回调
//
// 安全网路径的清理失败没有调用方可以接收错误，经由回调上报。
// 显式路径（RunNow、Guard.Release）的失败直接返回给调用方，
// 不会出现在这里。
//
// 回调在独立 goroutine 中执行，不阻塞清理工作协程。
// 返回的函数用于注销回调。
//
// 示例：
//
//	cancel := sys.OnCleanupFailure(func(evt lifecycle.EvtCleanupRan) {
//	    log.Printf("清理失败: %s: %v", evt.ID, evt.Err)
//	})
//	defer cancel()
func (s *Subsystem) OnCleanupFailure(fn func(EvtCleanupRan)) func() {
	return s.observers.onCleanupFailure(fn)
}

// OnGuardReleased 注册守卫释放回调
//
// 每个守卫释放完毕后触发一次（无论成败），回调自行按
// evt.Failed() 过滤。回调在独立 goroutine 中执行。
// 返回的函数用于注销回调。
func (s *Subsystem) OnGuardReleased(fn func(EvtGuardReleased)) func() {
	return s.observers.onGuardReleased(fn)
}
