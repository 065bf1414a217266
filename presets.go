package lifecycle

import (
	"github.com/dep2p/go-lifecycle/config"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置常量
// ════════════════════════════════════════════════════════════════════════════

// 预设名称常量
const (
	// PresetNameDefault 默认预设名称（空字符串，保持默认配置）
	PresetNameDefault = ""

	// PresetNameServer 服务端预设名称
	PresetNameServer = "server"

	// PresetNameTest 测试预设名称
	PresetNameTest = "test"

	// PresetNameMinimal 最小预设名称
	PresetNameMinimal = "minimal"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置获取
// ════════════════════════════════════════════════════════════════════════════

// GetDefaultConfig 获取默认配置
//
// 适用场景：多数嵌入式使用
// 特点：
//   - 运行时回收模式
//   - 适中的清理并发度
//   - 纯弱引用缓存语义
//   - 指标关闭
func GetDefaultConfig() *config.Config {
	return config.NewConfig()
}

// GetServerConfig 获取服务端配置
//
// 适用场景：长驻服务、大量短生命周期资源
// 特点：
//   - 高分片数与高并发清理
//   - LRU 强引用缓存层
//   - 周期性回收巡检
//   - 指标开启
func GetServerConfig() *config.Config {
	cfg := config.NewConfig()
	_ = config.ApplyPreset(cfg, PresetNameServer)
	return cfg
}

// GetTestConfig 获取测试配置
//
// 适用场景：单元测试、集成测试
// 特点：
//   - 手动回收模式，确定性触发
//   - 单清理协程，事件顺序可预测
//   - 调试级日志
func GetTestConfig() *config.Config {
	cfg := config.NewConfig()
	_ = config.ApplyPreset(cfg, PresetNameTest)
	return cfg
}

// GetMinimalConfig 获取最小配置
//
// 适用场景：资源受限环境、短生命周期进程
// 特点：
//   - 最小并发结构
//   - 禁用强引用缓存层与指标
func GetMinimalConfig() *config.Config {
	cfg := config.NewConfig()
	_ = config.ApplyPreset(cfg, PresetNameMinimal)
	return cfg
}

// GetConfigByPreset 根据预设名称获取配置
//
// 支持的预设名称：
//   - ""        - 默认配置
//   - "server"  - 服务端配置
//   - "test"    - 测试配置
//   - "minimal" - 最小配置
//
// 如果名称未知，返回默认配置。
func GetConfigByPreset(name string) *config.Config {
	switch name {
	case PresetNameServer:
		return GetServerConfig()
	case PresetNameTest:
		return GetTestConfig()
	case PresetNameMinimal:
		return GetMinimalConfig()
	default:
		// 默认返回默认配置
		return GetDefaultConfig()
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              预设应用
// ════════════════════════════════════════════════════════════════════════════

// ApplyPresetToConfig 将预设应用到现有配置
//
// 这会修改传入的配置，而不是创建新配置。
// 用于在已有配置基础上应用预设。
//
// 示例：
//
//	cfg := config.NewConfig()
//	lifecycle.ApplyPresetToConfig(cfg, "server")
func ApplyPresetToConfig(cfg *config.Config, presetName string) error {
	return config.ApplyPreset(cfg, presetName)
}

// ════════════════════════════════════════════════════════════════════════════
//                              预设列表
// ════════════════════════════════════════════════════════════════════════════

// PresetInfo 预设信息
type PresetInfo struct {
	// Name 预设名称
	Name string

	// Description 预设描述
	Description string

	// UseCase 适用场景
	UseCase string
}

// AvailablePresets 返回所有可用预设的信息
//
// 示例：
//
//	for _, preset := range lifecycle.AvailablePresets() {
//	    fmt.Printf("%s: %s\n", preset.Name, preset.Description)
//	}
func AvailablePresets() []PresetInfo {
	return []PresetInfo{
		{
			Name:        PresetNameServer,
			Description: "服务端优化配置，高并发清理与缓存保护",
			UseCase:     "长驻服务、高吞吐资源管理",
		},
		{
			Name:        PresetNameTest,
			Description: "测试优化配置，确定性回收触发",
			UseCase:     "单元测试、集成测试、调试",
		},
		{
			Name:        PresetNameMinimal,
			Description: "最小配置，最少的资源和功能",
			UseCase:     "嵌入式环境、短生命周期进程",
		},
	}
}
