package config

import (
	"errors"
)

// CleanupConfig 清理注册表配置
//
// 配置清理注册表的并发结构：
//   - 分片数量（降低锁竞争）
//   - 清理任务队列长度
//   - 并发执行清理动作的上限
//   - 回收巡检间隔
type CleanupConfig struct {
	// Shards 注册表分片数
	//
	// 按被监视对象的身份哈希分片，降低高并发注册时的锁竞争。
	Shards int `json:"shards"`

	// QueueSize 清理任务队列长度
	//
	// 不可达触发的清理动作先进入队列再由工作协程执行。
	// 队列满时任务溢出为独立协程执行（仍受 MaxConcurrent 限制）。
	QueueSize int `json:"queue_size"`

	// MaxConcurrent 并发执行清理动作的最大数量
	MaxConcurrent int `json:"max_concurrent"`

	// ReclaimInterval 回收巡检间隔
	//
	// 大于 0 时注册表周期性触发一次回收，缩短不可达对象
	// 被发现的延迟。0 表示完全依赖运行时自身的回收节奏。
	ReclaimInterval Duration `json:"reclaim_interval,omitempty"`
}

// DefaultCleanupConfig 返回默认清理配置
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		// ════════════════════════════════════════════════════════════════════
		// 并发结构
		// ════════════════════════════════════════════════════════════════════
		Shards:        16,  // 分片数：16 个
		QueueSize:     256, // 队列长度：256 个任务
		MaxConcurrent: 4,   // 并发清理：4 个工作协程

		// ════════════════════════════════════════════════════════════════════
		// 回收节奏
		// ════════════════════════════════════════════════════════════════════
		ReclaimInterval: 0, // 巡检间隔：0 表示不主动巡检
	}
}

// Validate 验证清理配置
func (c CleanupConfig) Validate() error {
	if c.Shards <= 0 {
		return errors.New("cleanup shards must be positive")
	}
	if c.QueueSize < 0 {
		return errors.New("cleanup queue size must be non-negative")
	}
	if c.MaxConcurrent <= 0 {
		return errors.New("cleanup max concurrent must be positive")
	}
	if c.ReclaimInterval < 0 {
		return errors.New("cleanup reclaim interval must be non-negative")
	}
	return nil
}

// WithShards 设置注册表分片数
func (c CleanupConfig) WithShards(n int) CleanupConfig {
	c.Shards = n
	return c
}

// WithQueueSize 设置清理任务队列长度
func (c CleanupConfig) WithQueueSize(n int) CleanupConfig {
	c.QueueSize = n
	return c
}

// WithMaxConcurrent 设置并发清理上限
func (c CleanupConfig) WithMaxConcurrent(n int) CleanupConfig {
	c.MaxConcurrent = n
	return c
}

// WithReclaimInterval 设置回收巡检间隔
func (c CleanupConfig) WithReclaimInterval(d Duration) CleanupConfig {
	c.ReclaimInterval = d
	return c
}
