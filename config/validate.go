package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，提供更明确的语义。
// 它会递归验证所有子配置。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 该函数会：
//  1. 检查配置有效性
//  2. 对于某些可修复的问题，自动应用修复
//  3. 返回修复后的配置或错误
//
// 可修复的问题示例：
//   - 空的模式/策略字符串 -> 使用默认值
//   - 非正的分片数或并发度 -> 使用默认值
//   - 负的巡检间隔 -> 置零
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	// 回收：空模式视为运行时模式
	if c.Reclaim.Mode == "" {
		c.Reclaim.Mode = ReclaimModeRuntime
	}

	// 清理：修复并发结构参数
	defaults := DefaultCleanupConfig()
	if c.Cleanup.Shards <= 0 {
		c.Cleanup.Shards = defaults.Shards
	}
	if c.Cleanup.QueueSize < 0 {
		c.Cleanup.QueueSize = defaults.QueueSize
	}
	if c.Cleanup.MaxConcurrent <= 0 {
		c.Cleanup.MaxConcurrent = defaults.MaxConcurrent
	}
	if c.Cleanup.ReclaimInterval < 0 {
		c.Cleanup.ReclaimInterval = 0
	}

	// 缓存：空策略视为不启用强引用层
	if c.Cache.Policy == "" {
		c.Cache.Policy = CachePolicyNone
	}
	if c.Cache.Policy != CachePolicyNone && c.Cache.StrongCapacity <= 0 {
		c.Cache.StrongCapacity = DefaultCacheConfig().StrongCapacity
	}

	// 日志：空值使用默认值
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig().Level
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig().Format
	}

	// 验证修复后的配置
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}

	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
// 生产代码应使用 Validate() 并处理错误。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}

// ValidateCompatibility 验证配置之间的兼容性
//
// 检查配置的各个部分是否相互兼容。
// 例如：回收巡检只有在运行时回收模式下才有意义。
func ValidateCompatibility(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}

	// 检查：巡检依赖运行时回收，手动/禁用模式下巡检不会触发任何通知
	if c.Reclaim.Mode != ReclaimModeRuntime && c.Cleanup.ReclaimInterval > 0 {
		return fmt.Errorf("reclaim interval requires runtime reclaim mode (current mode: %s)",
			c.Reclaim.Mode)
	}

	return nil
}
