package config

import (
	"errors"
	"fmt"
)

// 弱引用缓存强引用层策略
const (
	// CachePolicyNone 不启用强引用层
	CachePolicyNone = "none"

	// CachePolicyLRU 最近最少使用淘汰
	CachePolicyLRU = "lru"

	// CachePolicyARC 自适应替换缓存淘汰
	CachePolicyARC = "arc"
)

// CacheConfig 弱引用缓存配置
//
// 配置值缓存的强引用层：
//   - 淘汰策略（none/lru/arc）
//   - 强引用层容量
//
// 强引用层让热点值在垃圾回收中存活，弱引用层保证
// 冷值最终可被回收。
type CacheConfig struct {
	// Policy 强引用层淘汰策略
	//
	// 可选值：none / lru / arc
	Policy string `json:"policy"`

	// StrongCapacity 强引用层容量
	//
	// 仅在 Policy 不为 none 时生效。
	StrongCapacity int `json:"strong_capacity"`
}

// DefaultCacheConfig 返回默认弱引用缓存配置
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Policy:         CachePolicyNone, // 默认不启用强引用层：纯弱引用语义
		StrongCapacity: 128,             // 强引用容量：128 个条目
	}
}

// Validate 验证弱引用缓存配置
func (c CacheConfig) Validate() error {
	switch c.Policy {
	case CachePolicyNone, CachePolicyLRU, CachePolicyARC:
	default:
		return fmt.Errorf("unknown cache policy: %q", c.Policy)
	}
	if c.Policy != CachePolicyNone && c.StrongCapacity <= 0 {
		return errors.New("cache strong capacity must be positive when a policy is set")
	}
	return nil
}

// WithPolicy 设置强引用层淘汰策略
func (c CacheConfig) WithPolicy(policy string) CacheConfig {
	c.Policy = policy
	return c
}

// WithStrongCapacity 设置强引用层容量
func (c CacheConfig) WithStrongCapacity(n int) CacheConfig {
	c.StrongCapacity = n
	return c
}
