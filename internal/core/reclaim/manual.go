package reclaim

import (
	"sync"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// ManualNotifier 手动触发的不可达通知器
//
// 仅用于测试与演示:通知不依赖垃圾回收器,由调用方通过
// Trigger/TriggerAll 显式触发,行为完全确定。
// 内部只记录对象身份标识与回调,不持有对象强引用。
type ManualNotifier struct {
	mu      sync.Mutex
	watches map[uintptr][]*manualWatch
}

// manualWatch 单条手动监视记录
type manualWatch struct {
	fn    func()
	fired bool
}

// NewManual 创建手动触发通知器
//
// 返回:
//   - *ManualNotifier: 新的通知器实例
func NewManual() *ManualNotifier {
	return &ManualNotifier{
		watches: make(map[uintptr][]*manualWatch),
	}
}

// Name 返回通知器名称
func (m *ManualNotifier) Name() string {
	return "manual"
}

// Watch 注册对象不可达回调
//
// 参数:
//   - obj: 被监视对象,必须是非 nil 指针
//   - fn: 不可达回调,由 Trigger/TriggerAll 触发
//
// 返回:
//   - interfaces.CancelFunc: 幂等的取消函数
//   - error: 参数非法时返回对应错误
func (m *ManualNotifier) Watch(obj any, fn func()) (pkgif.CancelFunc, error) {
	if fn == nil {
		return nil, types.ErrNilAction
	}
	id, err := IdentityOf(obj)
	if err != nil {
		return nil, err
	}

	w := &manualWatch{fn: fn}
	m.mu.Lock()
	m.watches[id] = append(m.watches[id], w)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		w.fired = true
		m.mu.Unlock()
	}, nil
}

// Trigger 触发指定对象的全部监视回调
//
// 参数:
//   - obj: 已注册监视的对象
//
// 返回:
//   - int: 实际触发的回调数量
func (m *ManualNotifier) Trigger(obj any) int {
	id, err := IdentityOf(obj)
	if err != nil {
		return 0
	}

	m.mu.Lock()
	pending := m.take(id)
	m.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// TriggerAll 触发全部未取消的监视回调
//
// 返回:
//   - int: 实际触发的回调数量
func (m *ManualNotifier) TriggerAll() int {
	m.mu.Lock()
	var pending []func()
	for id := range m.watches {
		pending = append(pending, m.take(id)...)
	}
	m.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Pending 返回当前未触发且未取消的监视数量
func (m *ManualNotifier) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, ws := range m.watches {
		for _, w := range ws {
			if !w.fired {
				n++
			}
		}
	}
	return n
}

// take 取走指定标识下全部未触发的回调并清除记录
//
// 调用方必须持有 m.mu。
func (m *ManualNotifier) take(id uintptr) []func() {
	ws := m.watches[id]
	if len(ws) == 0 {
		return nil
	}
	delete(m.watches, id)

	var fns []func()
	for _, w := range ws {
		if !w.fired {
			w.fired = true
			fns = append(fns, w.fn)
		}
	}
	return fns
}
