package cleaner

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/lib/log"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

var logger = log.Logger("core/cleaner")

// 接口符合性检查
var _ pkgif.CleanupRegistry = (*Registry)(nil)

// ============================================================================
//                              Registry 清理注册表
// ============================================================================

// shard 注册表分片
//
// 按被观察对象身份标识分片,降低高频注册场景下的锁竞争。
type shard struct {
	mu   sync.Mutex
	regs map[uintptr]*registration
}

// Registry 安全网清理注册表
//
// 语义要点:
//
//   - 对被观察对象不持有强引用,注册不阻止回收
//   - 同一个存活对象只允许关联一个清理动作
//   - 动作恰好执行一次,显式与不可达触发以先到者为准
//   - 关闭后显式 RunNow 仍然有效,隐式安全网停止
type Registry struct {
	opts options

	shards []*shard
	idSeq  atomic.Uint64

	sweeper *sweeper

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error

	// 统计计数
	registered     atomic.Uint64
	active         atomic.Int64
	ranExplicit    atomic.Uint64
	ranUnreachable atomic.Uint64
	failures       atomic.Uint64
	spills         atomic.Uint64
}

// New 创建清理注册表
//
// 后台执行器随注册表一起启动,调用方负责 Close。
//
// 参数:
//   - opts: 注册表选项
//
// 返回:
//   - *Registry: 新注册表实例
func New(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{opts: o}
	r.shards = make([]*shard, o.shards)
	for i := range r.shards {
		r.shards[i] = &shard{regs: make(map[uintptr]*registration)}
	}
	r.sweeper = newSweeper(r, o)
	r.sweeper.start()

	logger.Debug("清理注册表已创建",
		"shards", o.shards,
		"notifier", o.notifier.Name(),
		"max_concurrent", o.maxConcurrent)
	return r
}

// Register 注册清理动作
//
// 参数:
//   - watched: 被观察对象,必须是非空指针
//   - action: 清理动作;幂等,且绝不允许捕获 watched 本身
//
// 返回:
//   - Registration: 注册句柄
//   - error: watched 已关联存活注册时返回 types.ErrDoubleRegistration,
//     注册表已关闭时返回 types.ErrRegistryClosed
func (r *Registry) Register(watched any, action func() error) (pkgif.Registration, error) {
	if action == nil {
		return nil, types.ErrNilAction
	}
	identity, err := reclaim.IdentityOf(watched)
	if err != nil {
		return nil, err
	}
	if r.closed.Load() {
		return nil, types.ErrRegistryClosed
	}

	reg := &registration{
		id:       types.RegistrationID(r.idSeq.Add(1)),
		identity: identity,
		action:   action,
		registry: r,
	}

	// 回调只捕获注册项,不捕获被观察对象
	cancel, err := r.opts.notifier.Watch(watched, func() { r.onUnreachable(reg) })
	if err != nil {
		return nil, err
	}
	reg.cancelWatch = cancel

	sh := r.shardFor(identity)
	sh.mu.Lock()
	if r.closed.Load() {
		sh.mu.Unlock()
		cancel()
		return nil, types.ErrRegistryClosed
	}
	if existing, ok := sh.regs[identity]; ok && existing.State() != types.StateInert {
		sh.mu.Unlock()
		cancel()
		return nil, types.ErrDoubleRegistration
	}
	sh.regs[identity] = reg
	sh.mu.Unlock()

	r.registered.Add(1)
	r.active.Add(1)
	if m := r.opts.metrics; m != nil {
		m.CleanupRegistered()
	}
	return reg, nil
}

// Len 返回当前待命的注册数
func (r *Registry) Len() int {
	total := 0
	for _, sh := range r.shards {
		sh.mu.Lock()
		total += len(sh.regs)
		sh.mu.Unlock()
	}
	return total
}

// Stats 返回统计快照
func (r *Registry) Stats() types.RegistryStats {
	return types.RegistryStats{
		Registered:     r.registered.Load(),
		Active:         r.active.Load(),
		RanExplicit:    r.ranExplicit.Load(),
		RanUnreachable: r.ranUnreachable.Load(),
		Failures:       r.failures.Load(),
		QueueSpills:    r.spills.Load(),
	}
}

// Close 关闭注册表
//
// 解除全部不可达监视并停止后台执行器:正在执行的动作等待完成,
// 排队中尚未执行的隐式清理被放弃。显式 RunNow 在关闭后仍然有效。
// Close 幂等。
//
// 返回:
//   - error: 后台执行器停止失败时返回对应错误
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		r.closed.Store(true)

		// 先解除监视,再停执行器:不再有新的隐式任务入队
		for _, sh := range r.shards {
			sh.mu.Lock()
			for _, reg := range sh.regs {
				reg.cancelWatch()
			}
			sh.mu.Unlock()
		}
		r.closeErr = r.sweeper.close()
		logger.Debug("清理注册表已关闭", "remaining", r.Len())
	})
	return r.closeErr
}

// ============================================================================
//                              内部路径
// ============================================================================

// onUnreachable 不可达通知回调
//
// 在运行时管理的 goroutine 上执行,必须快速返回:
// 只做执行权竞争与入队,动作本身移交后台执行器。
func (r *Registry) onUnreachable(reg *registration) {
	if r.closed.Load() {
		return
	}
	if !reg.claim(types.TriggerUnreachable) {
		return
	}
	r.sweeper.enqueue(reg)
}

// runAction 执行清理动作并收尾
//
// 调用方必须已持有执行权(claim 成功)。
func (r *Registry) runAction(reg *registration) error {
	start := time.Now()
	err := safeRun(reg.action)
	reg.err = err
	reg.state.Store(int32(types.StateInert))
	reg.cancelWatch()
	r.finish(reg)

	trigger := types.Trigger(reg.trigger.Load())
	switch trigger {
	case types.TriggerExplicit:
		r.ranExplicit.Add(1)
	case types.TriggerUnreachable:
		r.ranUnreachable.Add(1)
	}
	if err != nil {
		r.failures.Add(1)
	}
	if m := r.opts.metrics; m != nil {
		m.CleanupRun(trigger, err != nil)
	}

	if err != nil {
		logger.Warn("清理动作失败",
			"id", reg.id.String(),
			"trigger", trigger.String(),
			"err", err)
		// 隐式路径没有同步等待的调用方,失败投递给错误接收器
		if trigger == types.TriggerUnreachable && r.opts.sink != nil {
			r.opts.sink.ReportCleanupError(types.EvtCleanupRan{
				ID:      reg.id,
				Trigger: trigger,
				Err:     err,
				Elapsed: time.Since(start),
				Time:    time.Now(),
			})
		}
	}
	return err
}

// finishAbandoned 放弃已持有执行权的注册项
func (r *Registry) finishAbandoned(reg *registration) {
	reg.abandon()
	r.finish(reg)
}

// finish 从分片中移除注册项并更新活跃计数
func (r *Registry) finish(reg *registration) {
	sh := r.shardFor(reg.identity)
	sh.mu.Lock()
	// 身份标识可能已被后继注册复用,只移除本注册项
	if cur, ok := sh.regs[reg.identity]; ok && cur == reg {
		delete(sh.regs, reg.identity)
	}
	sh.mu.Unlock()
	r.active.Add(-1)
}

// shardFor 按身份标识选择分片
func (r *Registry) shardFor(identity uintptr) *shard {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(identity))
	return r.shards[murmur3.Sum64(b[:])%uint64(len(r.shards))]
}

// safeRun 执行清理动作并把 panic 恢复为错误
func safeRun(action func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("cleanup panic: %v", rec)
		}
	}()
	return action()
}
