package scope

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-lifecycle/pkg/lib/log"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

var logger = log.Logger("core/scope")

// ============================================================================
//                              Guard 释放守卫
// ============================================================================

// Guard 单个资源的释放守卫
//
// Guard 把一个已获取的资源与其释放动作绑定:释放动作恰好执行一次,
// 由显式 Release 或所属作用域回卷触发,以先到者为准。竞争由状态机的
// 原子推进裁决,失败方空操作返回。
//
// 状态机:
//
//	Armed ──► Releasing ──► Inert
//
// Inert 是终态;重复释放不是错误。
type Guard struct {
	id      types.ResourceID
	name    string
	release func() error

	// state 状态字,取值为 types.LifeState
	state atomic.Int32

	// trigger 实际发生的触发来源,由竞争胜出方在执行前写入
	trigger atomic.Int32

	// err 释放动作返回的错误
	//
	// 仅由胜出方在 Releasing 与 Inert 之间写入一次;
	// 读取方必须先观察到 StateInert。
	err error

	// owner 所属作用域,Detach 后为 nil
	owner   atomic.Pointer[Scope]
	tracker *Tracker
}

// newGuard 构造处于 Armed 状态的守卫
func newGuard(name string, release func() error, owner *Scope, tracker *Tracker) *Guard {
	g := &Guard{
		id:      types.NewResourceID(),
		name:    name,
		release: release,
		tracker: tracker,
	}
	g.owner.Store(owner)
	return g
}

// ID 返回守卫的资源标识
func (g *Guard) ID() types.ResourceID {
	return g.id
}

// Name 返回守卫名称
func (g *Guard) Name() string {
	return g.name
}

// State 返回当前生命周期状态
func (g *Guard) State() types.LifeState {
	return types.LifeState(g.state.Load())
}

// Released 返回释放动作是否已执行完毕
func (g *Guard) Released() bool {
	return g.State() == types.StateInert
}

// Trigger 返回实际发生的触发来源
//
// 返回:
//   - types.Trigger: 未触发时为 TriggerNone
func (g *Guard) Trigger() types.Trigger {
	return types.Trigger(g.trigger.Load())
}

// Err 返回释放动作的错误
//
// 返回:
//   - error: 释放尚未完成或释放成功时为 nil
func (g *Guard) Err() error {
	if g.State() != types.StateInert {
		return nil
	}
	return g.err
}

// Release 显式执行释放动作
//
// 首次调用执行释放动作并返回其错误;动作已被任一路径执行过或
// 正在执行时空操作返回 nil("已释放"不是错误)。
//
// 返回:
//   - error: 释放动作返回的错误
func (g *Guard) Release() error {
	return g.fire(types.TriggerExplicit)
}

// Detach 把守卫从所属作用域中移出
//
// 移出后作用域回卷不再触发该守卫,释放责任完全转移给调用方;
// 守卫保持 Armed,仍可显式 Release,或交给另一个作用域:
//
//	s2.Defer(g.Name(), g.Release)
//
// 返回:
//   - bool: 移出成功时为 true;守卫已释放、未归属作用域
//     或作用域已进入关闭流程时为 false
func (g *Guard) Detach() bool {
	if g.State() != types.StateArmed {
		return false
	}
	owner := g.owner.Load()
	if owner == nil {
		return false
	}
	if !owner.detach(g) {
		return false
	}
	g.owner.Store(nil)
	return true
}

// fire 以指定触发来源执行释放动作
//
// 至多一次语义的唯一入口:CAS 竞争 Armed → Releasing,
// 胜出方执行动作并推进到 Inert,失败方空操作返回 nil。
func (g *Guard) fire(trigger types.Trigger) error {
	if !g.state.CompareAndSwap(int32(types.StateArmed), int32(types.StateReleasing)) {
		return nil
	}
	g.trigger.Store(int32(trigger))

	start := time.Now()
	err := g.run()
	g.err = err
	g.state.Store(int32(types.StateInert))

	// 显式释放后从作用域栈中移除,回卷时无需再跳过
	if trigger == types.TriggerExplicit {
		if owner := g.owner.Swap(nil); owner != nil {
			owner.remove(g)
		}
	}

	if g.tracker != nil {
		g.tracker.guardReleased(types.EvtGuardReleased{
			Resource: g.id,
			Name:     g.name,
			Trigger:  trigger,
			Err:      err,
			Elapsed:  time.Since(start),
			Time:     time.Now(),
		})
	}
	if err != nil {
		logger.Warn("释放动作失败",
			"guard", g.name,
			"trigger", trigger.String(),
			"err", err)
	}
	return err
}

// run 执行释放动作并把 panic 恢复为错误
func (g *Guard) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("release panic: %v", r)
		}
	}()
	return g.release()
}
