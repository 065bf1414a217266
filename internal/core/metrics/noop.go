package metrics

import (
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// 接口符合性检查
var _ pkgif.MetricsReporter = NoopReporter{}

// NoopReporter 空指标上报器
//
// 指标禁用时注入,所有方法空操作。
type NoopReporter struct{}

// NewNoop 返回空指标上报器
func NewNoop() NoopReporter {
	return NoopReporter{}
}

// ScopeOpened 空操作
func (NoopReporter) ScopeOpened() {}

// ScopeClosed 空操作
func (NoopReporter) ScopeClosed() {}

// GuardArmed 空操作
func (NoopReporter) GuardArmed() {}

// GuardReleased 空操作
func (NoopReporter) GuardReleased(types.Trigger, bool) {}

// CleanupRegistered 空操作
func (NoopReporter) CleanupRegistered() {}

// CleanupRun 空操作
func (NoopReporter) CleanupRun(types.Trigger, bool) {}

// SweeperQueueDepth 空操作
func (NoopReporter) SweeperQueueDepth(int) {}

// CacheHit 空操作
func (NoopReporter) CacheHit() {}

// CacheMiss 空操作
func (NoopReporter) CacheMiss() {}

// CacheEvicted 空操作
func (NoopReporter) CacheEvicted() {}
