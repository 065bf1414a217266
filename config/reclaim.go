package config

import (
	"fmt"
)

// 不可达通知模式
const (
	// ReclaimModeRuntime 使用 Go 运行时的清理回调
	//
	// 对象被垃圾回收器判定不可达后触发通知，生产环境默认模式。
	ReclaimModeRuntime = "runtime"

	// ReclaimModeManual 手动触发通知
	//
	// 仅在显式调用 Trigger/TriggerAll 时触发，用于确定性测试。
	ReclaimModeManual = "manual"

	// ReclaimModeDisabled 关闭不可达通知
	//
	// 注册与显式清理仍然可用，只是失去兜底回收。
	// 适用于宿主环境不提供回收通知能力的降级场景。
	ReclaimModeDisabled = "disabled"
)

// ReclaimConfig 不可达通知配置
type ReclaimConfig struct {
	// Mode 通知模式
	//
	// 可选值：runtime / manual / disabled
	Mode string `json:"mode"`
}

// DefaultReclaimConfig 返回默认不可达通知配置
func DefaultReclaimConfig() ReclaimConfig {
	return ReclaimConfig{
		Mode: ReclaimModeRuntime, // 默认模式：跟随运行时垃圾回收
	}
}

// Validate 验证不可达通知配置
func (c ReclaimConfig) Validate() error {
	switch c.Mode {
	case ReclaimModeRuntime, ReclaimModeManual, ReclaimModeDisabled:
		return nil
	default:
		return fmt.Errorf("unknown reclaim mode: %q", c.Mode)
	}
}

// WithMode 设置不可达通知模式
func (c ReclaimConfig) WithMode(mode string) ReclaimConfig {
	c.Mode = mode
	return c
}
