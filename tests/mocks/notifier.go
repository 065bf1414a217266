package mocks

import (
	"sync"

	"github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// MockNotifier 模拟 ReclaimNotifier 接口实现
//
// 默认行为：记录每次监视，回调存入待触发表，由测试代码
// 通过 Fire/FireAll 显式触发。绝不持有被监视对象本身。
type MockNotifier struct {
	mu      sync.Mutex
	pending map[uint64]func()
	nextID  uint64

	// 可覆盖的方法
	WatchFunc func(obj any, fn func()) (interfaces.CancelFunc, error)
	NameFunc  func() string

	// 调用记录
	WatchCalls  int
	CancelCalls int
}

var _ interfaces.ReclaimNotifier = (*MockNotifier)(nil)

// NewMockNotifier 创建带有默认行为的 MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		pending: make(map[uint64]func()),
	}
}

// Watch 监视对象的不可达事件
//
// 注意：默认实现不校验 obj 是否为指针，也不真正观察可达性；
// 回调仅在 Fire/FireAll 被调用时执行。
func (m *MockNotifier) Watch(obj any, fn func()) (interfaces.CancelFunc, error) {
	m.mu.Lock()
	m.WatchCalls++
	watchFunc := m.WatchFunc
	m.mu.Unlock()

	if watchFunc != nil {
		return watchFunc(obj, fn)
	}

	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.pending[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.CancelCalls++
		delete(m.pending, id)
		m.mu.Unlock()
	}, nil
}

// Name 返回实现名称
func (m *MockNotifier) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}

// FireAll 触发全部待命回调，返回触发数量
//
// 模拟一次"所有被监视对象同时不可达"的回收事件。
// 回调在调用方 goroutine 上同步执行。
func (m *MockNotifier) FireAll() int {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.pending))
	for id, fn := range m.pending {
		fns = append(fns, fn)
		delete(m.pending, id)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// FireOne 触发一个待命回调，返回是否触发
func (m *MockNotifier) FireOne() bool {
	m.mu.Lock()
	var fn func()
	for id, f := range m.pending {
		fn = f
		delete(m.pending, id)
		break
	}
	m.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending 返回当前待命的监视数
func (m *MockNotifier) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
