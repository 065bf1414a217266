package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FromJSON 从 JSON 数据创建配置
//
// 支持从 JSON 文件或字符串加载配置。
// JSON 格式与 Config 结构体一一对应，未出现的字段保持默认值。
//
// 示例 JSON:
//
//	{
//	  "cleanup": {"shards": 32, "max_concurrent": 8},
//	  "reclaim": {"mode": "runtime"},
//	  "cache": {"policy": "lru", "strong_capacity": 256}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func ToJSON(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// ApplyPreset 应用预设配置
//
// Preset 提供了针对不同场景优化的配置组合。
// 该函数将预设应用到配置上。
//
// 支持的预设：
//   - "server": 服务端优化（高并发清理）
//   - "test": 测试优化（确定性回收）
//   - "minimal": 最小配置
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "server":
		return applyServerPreset(cfg)
	case "test":
		return applyTestPreset(cfg)
	case "minimal":
		return applyMinimalPreset(cfg)
	case "":
		// 空预设，不做任何操作
		return nil
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
}

// applyServerPreset 应用服务端预设
//
// 服务端配置优化：
//   - 高分片数与高并发清理，支撑大量注册
//   - 启用强引用缓存层与指标上报
//   - 周期性回收巡检，缩短回收延迟
func applyServerPreset(cfg *Config) error {
	// 清理：高并发结构
	cfg.Cleanup.Shards = 64
	cfg.Cleanup.QueueSize = 1024
	cfg.Cleanup.MaxConcurrent = 16
	cfg.Cleanup.ReclaimInterval = Duration(2 * time.Minute)

	// 缓存：启用 LRU 强引用层，保护热点值
	cfg.Cache.Policy = CachePolicyLRU
	cfg.Cache.StrongCapacity = 1024

	// 指标：服务端默认开启
	cfg.Metrics.Enabled = true

	return nil
}

// applyTestPreset 应用测试预设
//
// 测试配置优化：
//   - 手动回收模式，测试可确定性触发不可达通知
//   - 单工作协程，事件顺序可预测
//   - 调试级日志
func applyTestPreset(cfg *Config) error {
	// 回收：手动模式，不依赖垃圾回收时机
	cfg.Reclaim.Mode = ReclaimModeManual

	// 清理：单协程执行，顺序确定
	cfg.Cleanup.Shards = 1
	cfg.Cleanup.MaxConcurrent = 1
	cfg.Cleanup.ReclaimInterval = 0

	// 日志：调试级别
	cfg.Log.Level = "debug"

	return nil
}

// applyMinimalPreset 应用最小预设
//
// 最小配置优化：
//   - 最低资源占用
//   - 禁用强引用缓存层与指标
//   - 适合嵌入式与短生命周期进程
func applyMinimalPreset(cfg *Config) error {
	// 清理：极小并发结构
	cfg.Cleanup.Shards = 4
	cfg.Cleanup.QueueSize = 64
	cfg.Cleanup.MaxConcurrent = 2
	cfg.Cleanup.ReclaimInterval = 0

	// 缓存：纯弱引用语义
	cfg.Cache.Policy = CachePolicyNone

	// 指标：关闭
	cfg.Metrics.Enabled = false

	return nil
}

// MergeConfigs 合并多个配置
//
// 将多个配置合并为一个，后面的配置会完全覆盖前面的配置。
// 用于实现配置的分层覆盖（默认配置 -> 预设配置 -> 用户配置）。
//
// 合并策略：后者完全覆盖前者
//   - 如果需要逐字段合并，请在调用前手动处理
//   - nil 配置会被跳过
func MergeConfigs(configs ...*Config) (*Config, error) {
	if len(configs) == 0 {
		return NewConfig(), nil
	}

	var result *Config
	for _, cfg := range configs {
		if cfg != nil {
			// 后者完全覆盖前者
			result = cfg
		}
	}

	if result == nil {
		return NewConfig(), nil
	}

	return result, nil
}

// CloneConfig 克隆配置
//
// 创建配置的深拷贝，用于安全地修改配置而不影响原始配置。
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}

	cloned := &Config{
		Scope:   cfg.Scope,
		Cleanup: cfg.Cleanup,
		Reclaim: cfg.Reclaim,
		Cache:   cfg.Cache,
		Metrics: cfg.Metrics,
		Log:     cfg.Log,
	}

	return cloned
}
