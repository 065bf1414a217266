package mocks

import (
	"sync"

	"github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// MockMetrics 模拟 MetricsReporter 接口实现
//
// 按指标名计数，便于验证打点路径是否被触达。
type MockMetrics struct {
	mu     sync.Mutex
	counts map[string]int
	depth  int
}

var _ interfaces.MetricsReporter = (*MockMetrics)(nil)

// NewMockMetrics 创建 MockMetrics
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		counts: make(map[string]int),
	}
}

func (m *MockMetrics) inc(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
}

// ScopeOpened 记录作用域打开
func (m *MockMetrics) ScopeOpened() { m.inc("scope_opened") }

// ScopeClosed 记录作用域关闭
func (m *MockMetrics) ScopeClosed() { m.inc("scope_closed") }

// GuardArmed 记录 Guard 进入待命
func (m *MockMetrics) GuardArmed() { m.inc("guard_armed") }

// GuardReleased 记录 Guard 完成释放
func (m *MockMetrics) GuardReleased(trigger types.Trigger, failed bool) {
	if failed {
		m.inc("guard_released_failed")
		return
	}
	m.inc("guard_released")
}

// CleanupRegistered 记录清理注册
func (m *MockMetrics) CleanupRegistered() { m.inc("cleanup_registered") }

// CleanupRun 记录清理动作执行
func (m *MockMetrics) CleanupRun(trigger types.Trigger, failed bool) {
	if failed {
		m.inc("cleanup_run_failed")
		return
	}
	m.inc("cleanup_run_" + trigger.String())
}

// SweeperQueueDepth 记录后台执行器当前队列深度
func (m *MockMetrics) SweeperQueueDepth(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depth = depth
}

// CacheHit 记录弱引用缓存命中
func (m *MockMetrics) CacheHit() { m.inc("cache_hit") }

// CacheMiss 记录弱引用缓存未命中
func (m *MockMetrics) CacheMiss() { m.inc("cache_miss") }

// CacheEvicted 记录弱引用缓存条目被回收
func (m *MockMetrics) CacheEvicted() { m.inc("cache_evicted") }

// Count 返回指定指标的计数
func (m *MockMetrics) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

// QueueDepth 返回最近记录的队列深度
func (m *MockMetrics) QueueDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.depth
}
