package cleaner

import (
	"context"
	"runtime"
	"time"

	"github.com/jbenet/goprocess"
	goprocessctx "github.com/jbenet/goprocess/context"
	"golang.org/x/sync/semaphore"
)

// ============================================================================
//                              sweeper 后台执行器
// ============================================================================

// sweeper 隐式清理的后台执行器
//
// 不可达触发的清理动作经有界队列移交到这里异步执行,
// 并发度由信号量限制,队列满时降级为独立 goroutine 直跑,
// 保证不阻塞运行时的回收通知 goroutine。
type sweeper struct {
	r *Registry

	queue chan *registration
	sem   *semaphore.Weighted

	// nudge 大于零时周期性主动触发垃圾回收,
	// 给长期安静的堆一个发现不可达对象的机会
	nudge time.Duration

	proc    goprocess.Process
	closing context.Context
}

// newSweeper 构造后台执行器
func newSweeper(r *Registry, o options) *sweeper {
	return &sweeper{
		r:     r,
		queue: make(chan *registration, o.queueSize),
		sem:   semaphore.NewWeighted(int64(o.maxConcurrent)),
		nudge: o.reclaimInterval,
	}
}

// start 启动分发循环
func (s *sweeper) start() {
	s.proc = goprocess.WithTeardown(func() error { return nil })
	s.closing = goprocessctx.OnClosingContext(s.proc)
	s.proc.Go(s.dispatch)
}

// dispatch 队列分发循环
//
// 每个出队任务在信号量许可下交给子进程执行;
// 关闭信号到达后停止分发,已出队未执行的任务被放弃。
func (s *sweeper) dispatch(p goprocess.Process) {
	var tickC <-chan time.Time
	if s.nudge > 0 {
		ticker := s.r.opts.clk.Ticker(s.nudge)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		select {
		case <-p.Closing():
			return
		case reg := <-s.queue:
			s.reportDepth()
			if err := s.sem.Acquire(s.closing, 1); err != nil {
				s.r.finishAbandoned(reg)
				return
			}
			p.Go(func(goprocess.Process) {
				defer s.sem.Release(1)
				_ = s.r.runAction(reg)
			})
		case <-tickC:
			runtime.GC()
		}
	}
}

// enqueue 非阻塞入队
//
// 队列满时计一次溢出并降级为独立 goroutine 直跑,
// 并发度仍受信号量约束。
func (s *sweeper) enqueue(reg *registration) {
	select {
	case s.queue <- reg:
		s.reportDepth()
	default:
		s.r.spills.Add(1)
		logger.Debug("执行器队列已满,溢出直跑", "id", reg.id.String())
		go func() {
			if err := s.sem.Acquire(s.closing, 1); err != nil {
				s.r.finishAbandoned(reg)
				return
			}
			defer s.sem.Release(1)
			_ = s.r.runAction(reg)
		}()
	}
}

// reportDepth 上报当前队列深度
func (s *sweeper) reportDepth() {
	if m := s.r.opts.metrics; m != nil {
		m.SweeperQueueDepth(len(s.queue))
	}
}

// close 停止执行器并清空残留队列
//
// 先等待分发循环与全部执行中的动作结束,再放弃剩余排队任务。
func (s *sweeper) close() error {
	err := s.proc.Close()
	for {
		select {
		case reg := <-s.queue:
			s.r.finishAbandoned(reg)
		default:
			return err
		}
	}
}
