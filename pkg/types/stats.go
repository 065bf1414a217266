// Package types 定义 go-lifecycle 的基础类型
//
// 本文件定义统计快照类型。
package types

// ============================================================================
//                              ScopeStats - 作用域统计
// ============================================================================

// ScopeStats 作用域追踪统计信息
//
// 由 scope.Tracker 聚合，用于泄漏排查：长期非零的 GuardsArmed
// 通常意味着某个作用域未被关闭。
type ScopeStats struct {
	// ScopesOpen 当前打开的作用域数
	ScopesOpen int64 `json:"scopes_open"`

	// ScopesTotal 累计创建的作用域数
	ScopesTotal uint64 `json:"scopes_total"`

	// GuardsArmed 当前待命的 Guard 数
	GuardsArmed int64 `json:"guards_armed"`

	// GuardsReleased 累计完成释放的 Guard 数
	GuardsReleased uint64 `json:"guards_released"`

	// ReleaseFailures 累计释放失败次数
	ReleaseFailures uint64 `json:"release_failures"`
}

// ============================================================================
//                              RegistryStats - 注册表统计
// ============================================================================

// RegistryStats 清理注册表统计信息
type RegistryStats struct {
	// Registered 累计注册数
	Registered uint64 `json:"registered"`

	// Active 当前待命的注册数
	Active int64 `json:"active"`

	// RanExplicit 经显式 RunNow 执行的清理数
	RanExplicit uint64 `json:"ran_explicit"`

	// RanUnreachable 经不可达触发执行的清理数
	RanUnreachable uint64 `json:"ran_unreachable"`

	// Failures 清理动作失败次数（含 panic 恢复）
	Failures uint64 `json:"failures"`

	// QueueSpills 后台队列满时的溢出执行次数
	QueueSpills uint64 `json:"queue_spills"`
}

// TotalRan 返回累计执行的清理数
func (s RegistryStats) TotalRan() uint64 {
	return s.RanExplicit + s.RanUnreachable
}

// ============================================================================
//                              CacheStats - 弱引用缓存统计
// ============================================================================

// CacheStats 弱引用缓存统计信息
type CacheStats struct {
	// Len 当前条目数（含弱侧可能已不可达的待清除条目）
	Len int `json:"len"`

	// Hits 命中次数
	Hits uint64 `json:"hits"`

	// Misses 未命中次数（含弱侧已回收）
	Misses uint64 `json:"misses"`

	// Evictions 因弱侧不可达被移除的条目数
	Evictions uint64 `json:"evictions"`
}

// ============================================================================
//                              SubsystemStats - 子系统统计
// ============================================================================

// SubsystemStats 子系统聚合统计信息
type SubsystemStats struct {
	// Scope 作用域统计
	Scope ScopeStats `json:"scope"`

	// Registry 注册表统计
	Registry RegistryStats `json:"registry"`
}
