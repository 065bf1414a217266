package scope

import (
	"sync"
	"sync/atomic"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// ============================================================================
//                              Tracker 作用域追踪器
// ============================================================================

// Tracker 作用域与守卫的工厂兼统计聚合器
//
// 同一追踪器创建的所有作用域共享统计口径与观测回调,
// 长期非零的 GuardsArmed 通常意味着某个作用域未被关闭。
// 全部方法并发安全。
type Tracker struct {
	scopesOpen      atomic.Int64
	scopesTotal     atomic.Uint64
	guardsArmed     atomic.Int64
	guardsReleased  atomic.Uint64
	releaseFailures atomic.Uint64

	metrics   pkgif.MetricsReporter
	maxGuards int

	obsMu     sync.RWMutex
	observers map[uint64]func(types.EvtGuardReleased)
	obsSeq    uint64
}

// NewTracker 创建作用域追踪器
//
// 参数:
//   - opts: 追踪器选项
//
// 返回:
//   - *Tracker: 新追踪器实例
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		observers: make(map[uint64]func(types.EvtGuardReleased)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewScope 创建归属本追踪器的作用域
//
// 参数:
//   - name: 作用域名称,用于日志与事件
//
// 返回:
//   - *Scope: 新作用域,调用方负责 Close
func (t *Tracker) NewScope(name string) *Scope {
	s := newScope(name, t.maxGuards, t)
	t.scopesOpen.Add(1)
	t.scopesTotal.Add(1)
	if t.metrics != nil {
		t.metrics.ScopeOpened()
	}
	logger.Debug("作用域已创建", "scope", name)
	return s
}

// Stats 返回统计快照
func (t *Tracker) Stats() types.ScopeStats {
	return types.ScopeStats{
		ScopesOpen:      t.scopesOpen.Load(),
		ScopesTotal:     t.scopesTotal.Load(),
		GuardsArmed:     t.guardsArmed.Load(),
		GuardsReleased:  t.guardsReleased.Load(),
		ReleaseFailures: t.releaseFailures.Load(),
	}
}

// OnGuardReleased 注册守卫释放观测回调
//
// 回调在释放发生的 goroutine 上同步执行,实现必须快速返回。
//
// 参数:
//   - fn: 观测回调
//
// 返回:
//   - func(): 幂等的注销函数
func (t *Tracker) OnGuardReleased(fn func(types.EvtGuardReleased)) func() {
	if fn == nil {
		return func() {}
	}
	t.obsMu.Lock()
	t.obsSeq++
	id := t.obsSeq
	t.observers[id] = fn
	t.obsMu.Unlock()

	return func() {
		t.obsMu.Lock()
		delete(t.observers, id)
		t.obsMu.Unlock()
	}
}

// guardArmed 记录守卫进入待命
func (t *Tracker) guardArmed() {
	t.guardsArmed.Add(1)
	if t.metrics != nil {
		t.metrics.GuardArmed()
	}
}

// guardReleased 记录守卫完成释放并分发事件
func (t *Tracker) guardReleased(evt types.EvtGuardReleased) {
	t.guardsArmed.Add(-1)
	t.guardsReleased.Add(1)
	if evt.Failed() {
		t.releaseFailures.Add(1)
	}
	if t.metrics != nil {
		t.metrics.GuardReleased(evt.Trigger, evt.Failed())
	}

	t.obsMu.RLock()
	fns := make([]func(types.EvtGuardReleased), 0, len(t.observers))
	for _, fn := range t.observers {
		fns = append(fns, fn)
	}
	t.obsMu.RUnlock()
	for _, fn := range fns {
		fn(evt)
	}
}

// scopeClosed 记录作用域关闭
func (t *Tracker) scopeClosed() {
	t.scopesOpen.Add(-1)
	if t.metrics != nil {
		t.metrics.ScopeClosed()
	}
}
