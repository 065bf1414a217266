package cleaner

import (
	"sync/atomic"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// 接口符合性检查
var _ pkgif.Registration = (*registration)(nil)

// ============================================================================
//                              registration 注册项
// ============================================================================

// registration 单条清理注册
//
// 状态机与 scope.Guard 同构:
//
//	Armed ──► Releasing ──► Inert
//
// 两条触发路径(RunNow / 不可达通知)通过 CAS 竞争 Armed → Releasing,
// 胜出方独占执行权,失败方空操作返回。
type registration struct {
	id types.RegistrationID

	// identity 被观察对象的身份标识,仅用于分片与去重,绝不解引用
	identity uintptr

	action func() error

	// state 状态字,取值为 types.LifeState
	state atomic.Int32

	// trigger 实际发生的触发来源,由竞争胜出方在执行前写入
	trigger atomic.Int32

	// err 清理动作返回的错误
	//
	// 仅由胜出方在 Releasing 与 Inert 之间写入一次;
	// 读取方必须先观察到 StateInert。
	err error

	// cancelWatch 解除不可达监视,幂等
	cancelWatch pkgif.CancelFunc

	registry *Registry
}

// ID 返回注册标识
func (reg *registration) ID() types.RegistrationID {
	return reg.id
}

// State 返回当前生命周期状态
func (reg *registration) State() types.LifeState {
	return types.LifeState(reg.state.Load())
}

// Trigger 返回实际发生的触发来源
func (reg *registration) Trigger() types.Trigger {
	return types.Trigger(reg.trigger.Load())
}

// Err 返回清理动作的错误
//
// 返回:
//   - error: 清理尚未完成或清理成功时为 nil
func (reg *registration) Err() error {
	if reg.State() != types.StateInert {
		return nil
	}
	return reg.err
}

// RunNow 立即执行清理动作
//
// 首次调用同步执行动作并返回其错误;动作已被任一路径执行过
// 或正在执行时空操作返回 nil("已释放"不是错误)。
//
// 返回:
//   - error: 清理动作返回的错误
func (reg *registration) RunNow() error {
	if !reg.claim(types.TriggerExplicit) {
		return nil
	}
	return reg.registry.runAction(reg)
}

// claim 竞争执行权
//
// 返回:
//   - bool: CAS Armed → Releasing 成功时为 true,调用方获得独占执行权
func (reg *registration) claim(trigger types.Trigger) bool {
	if !reg.state.CompareAndSwap(int32(types.StateArmed), int32(types.StateReleasing)) {
		return false
	}
	reg.trigger.Store(int32(trigger))
	return true
}

// abandon 放弃执行,直接推进到终态
//
// 仅用于注册表关闭时排队任务的清空,动作不会执行。
// 调用方必须已持有执行权(claim 成功)。
func (reg *registration) abandon() {
	reg.trigger.Store(int32(types.TriggerNone))
	reg.state.Store(int32(types.StateInert))
}
