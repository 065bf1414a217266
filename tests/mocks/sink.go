package mocks

import (
	"sync"

	"github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// MockErrorSink 模拟 ErrorSink 接口实现
//
// 默认行为：记录收到的全部清理失败事件。
type MockErrorSink struct {
	mu     sync.Mutex
	events []types.EvtCleanupRan

	// 可覆盖的方法
	ReportFunc func(evt types.EvtCleanupRan)
}

var _ interfaces.ErrorSink = (*MockErrorSink)(nil)

// NewMockErrorSink 创建带有默认行为的 MockErrorSink
func NewMockErrorSink() *MockErrorSink {
	return &MockErrorSink{}
}

// ReportCleanupError 上报一次清理失败
func (m *MockErrorSink) ReportCleanupError(evt types.EvtCleanupRan) {
	if m.ReportFunc != nil {
		m.ReportFunc(evt)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

// Events 返回已记录事件的快照
func (m *MockErrorSink) Events() []types.EvtCleanupRan {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.EvtCleanupRan, len(m.events))
	copy(out, m.events)
	return out
}

// Len 返回已记录事件数
func (m *MockErrorSink) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// Reset 清空记录
func (m *MockErrorSink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
