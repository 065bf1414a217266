package scope

import (
	"sync"

	"github.com/dep2p/go-lifecycle/pkg/types"
)

// ============================================================================
//                              Scope 资源作用域
// ============================================================================

// Scope 成组管理守卫的资源作用域
//
// 作用域按获取顺序压栈守卫,关闭时严格逆序逐个回卷,
// 与依赖方向相反:后获取的资源可能依赖先获取的资源。
//
// 回卷期间的错误按抑制链规则合并:
//
//   - 主体错误(CloseErr/CloseWith 传入)始终是主错误,绝不被覆盖
//   - 主体无错时,第一个释放失败晋升为主错误
//   - 其余释放失败按发生顺序记录为被抑制错误
//
// 并发安全:守卫的显式释放可以与作用域关闭竞争,
// 每个守卫的至多一次语义由其状态机独立裁决。
type Scope struct {
	id   types.ResourceID
	name string

	mu     sync.Mutex
	guards []*Guard
	closed bool

	// maxGuards 单作用域守卫数上限,0 表示不限制
	maxGuards int

	tracker *Tracker
}

// newScope 构造空作用域
func newScope(name string, maxGuards int, tracker *Tracker) *Scope {
	return &Scope{
		id:        types.NewResourceID(),
		name:      name,
		maxGuards: maxGuards,
		tracker:   tracker,
	}
}

// ID 返回作用域标识
func (s *Scope) ID() types.ResourceID {
	return s.id
}

// Name 返回作用域名称
func (s *Scope) Name() string {
	return s.name
}

// Len 返回当前在栈上的守卫数
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.guards)
}

// Closed 返回作用域是否已关闭
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Defer 注册释放动作并压栈守卫
//
// 参数:
//   - name: 守卫名称,用于事件与日志
//   - release: 释放动作,作用域关闭时逆序执行
//
// 返回:
//   - *Guard: 新守卫,可用于提前显式释放或 Detach
//   - error: release 为 nil 时返回 types.ErrNilRelease,
//     作用域已关闭时返回 types.ErrScopeClosed
func (s *Scope) Defer(name string, release func() error) (*Guard, error) {
	if release == nil {
		return nil, types.ErrNilRelease
	}

	g := newGuard(name, release, s, s.tracker)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, types.ErrScopeClosed
	}
	if s.maxGuards > 0 && len(s.guards) >= s.maxGuards {
		s.mu.Unlock()
		return nil, types.ErrGuardLimitReached
	}
	s.guards = append(s.guards, g)
	s.mu.Unlock()

	if s.tracker != nil {
		s.tracker.guardArmed()
	}
	return g, nil
}

// Close 关闭作用域并逆序回卷全部守卫
//
// 已显式释放或已移出的守卫被跳过。Close 幂等:
// 重复关闭空操作返回 nil。
//
// 返回:
//   - error: 回卷失败时返回 *types.ReleaseError
func (s *Scope) Close() error {
	return s.CloseErr(nil)
}

// CloseErr 以主体错误关闭作用域
//
// 适用于"主体逻辑已失败,仍需回卷清理"的路径:primary 作为
// 主错误保留,回卷失败全部记录为被抑制错误。
//
// 参数:
//   - primary: 主体错误,可为 nil
//
// 返回:
//   - error: 回卷无失败时原样返回 primary
func (s *Scope) CloseErr(primary error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return primary
	}
	s.closed = true
	stack := s.guards
	s.guards = nil
	s.mu.Unlock()

	// 逆序回卷,严格一次一个
	var failures []error
	for i := len(stack) - 1; i >= 0; i-- {
		if err := stack[i].fire(types.TriggerScopeExit); err != nil {
			failures = append(failures, err)
		}
	}

	if s.tracker != nil {
		s.tracker.scopeClosed()
	}
	logger.Debug("作用域已关闭",
		"scope", s.name,
		"guards", len(stack),
		"failures", len(failures))

	if len(failures) == 0 {
		return primary
	}
	return types.NewReleaseError(primary, failures...)
}

// CloseWith 按 defer 习惯用法关闭作用域
//
// 把回卷结果合并进调用方的命名返回值:
//
//	func do() (err error) {
//	    s := tracker.NewScope("do")
//	    defer s.CloseWith(&err)
//	    ...
//	}
//
// 参数:
//   - errp: 指向调用方错误变量的指针,其当前值作为主体错误
func (s *Scope) CloseWith(errp *error) {
	if errp == nil {
		_ = s.Close()
		return
	}
	*errp = s.CloseErr(*errp)
}

// remove 从栈上移除指定守卫
//
// 由守卫在显式释放后回调,保持长寿作用域的栈不膨胀。
// 作用域已关闭时栈已被取走,空操作返回。
func (s *Scope) remove(g *Guard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(g)
}

// detach 为 Guard.Detach 执行栈移除
//
// 与 CloseErr 争夺同一把锁:关闭流程先提交则移出失败,
// 守卫仍由回卷负责;移出先提交则回卷快照不含该守卫。
func (s *Scope) detach(g *Guard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.removeLocked(g)
}

// removeLocked 在持锁状态下移除守卫
func (s *Scope) removeLocked(g *Guard) bool {
	for i, cur := range s.guards {
		if cur == g {
			s.guards = append(s.guards[:i], s.guards[i+1:]...)
			return true
		}
	}
	return false
}
