package config

import (
	"fmt"
)

// MetricsConfig 指标上报配置
type MetricsConfig struct {
	// Enabled 启用 Prometheus 指标上报
	//
	// 关闭时使用空实现，所有指标调用为零开销。
	Enabled bool `json:"enabled"`

	// Namespace 指标命名空间前缀
	//
	// 为空时使用内置默认值。
	Namespace string `json:"namespace,omitempty"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false, // 默认关闭：由宿主应用显式开启
		Namespace: "",    // 命名空间：空表示使用内置默认值
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.Namespace == "" {
		return nil
	}
	// Prometheus 命名空间字符集：[a-zA-Z_:][a-zA-Z0-9_:]*
	for i, r := range c.Namespace {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("metrics namespace must not start with a digit: %q", c.Namespace)
			}
		default:
			return fmt.Errorf("metrics namespace contains invalid character %q", r)
		}
	}
	return nil
}

// WithEnabled 设置是否启用指标上报
func (c MetricsConfig) WithEnabled(enabled bool) MetricsConfig {
	c.Enabled = enabled
	return c
}

// WithNamespace 设置指标命名空间
func (c MetricsConfig) WithNamespace(ns string) MetricsConfig {
	c.Namespace = ns
	return c
}
