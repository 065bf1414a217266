// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//   - 支持预设配置（server/test/minimal）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Cleanup.MaxConcurrent = 8
//	cfg.Metrics.Enabled = true
//
//	// 应用预设到现有配置
//	config.ApplyPreset(cfg, "server")
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

// Config 是 go-lifecycle 的完整配置结构
//
// 该结构体嵌入了所有组件的子配置，提供统一的配置接口。
// 配置按照功能模块组织：
//   - Scope: 作用域守卫（LIFO 释放栈）
//   - Cleanup: 清理注册表（分片、队列、并发度）
//   - Reclaim: 不可达通知（runtime/manual/disabled）
//   - Cache: 弱引用缓存（强引用层策略）
//   - Metrics: 指标上报
//   - Log: 日志
type Config struct {
	// Scope 作用域守卫配置
	Scope ScopeConfig `json:"scope"`

	// Cleanup 清理注册表配置
	Cleanup CleanupConfig `json:"cleanup"`

	// Reclaim 不可达通知配置
	Reclaim ReclaimConfig `json:"reclaim"`

	// Cache 弱引用缓存配置
	Cache CacheConfig `json:"cache"`

	// Metrics 指标上报配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
// 可以通过修改字段或使用 With* 函数来定制配置。
func NewConfig() *Config {
	return &Config{
		Scope:   DefaultScopeConfig(),
		Cleanup: DefaultCleanupConfig(),
		Reclaim: DefaultReclaimConfig(),
		Cache:   DefaultCacheConfig(),
		Metrics: DefaultMetricsConfig(),
		Log:     DefaultLogConfig(),
	}
}

// Validate 验证整个配置的有效性
//
// 依次验证所有子配置，返回第一个遇到的错误。
func (c *Config) Validate() error {
	if err := c.Scope.Validate(); err != nil {
		return err
	}
	if err := c.Cleanup.Validate(); err != nil {
		return err
	}
	if err := c.Reclaim.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
