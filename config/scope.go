package config

import (
	"errors"
)

// ScopeConfig 作用域守卫配置
//
// 配置作用域与守卫的行为：
//   - 单个作用域可持有的守卫数量上限
type ScopeConfig struct {
	// MaxGuardsPerScope 单个作用域的最大守卫数
	//
	// 超过该数量后 Defer 返回错误，防止泄漏的作用域无限增长。
	// 0 表示不限制。
	MaxGuardsPerScope int `json:"max_guards_per_scope"`
}

// DefaultScopeConfig 返回默认作用域配置
func DefaultScopeConfig() ScopeConfig {
	return ScopeConfig{
		MaxGuardsPerScope: 0, // 不限制：多数作用域生命周期很短
	}
}

// Validate 验证作用域配置
func (c ScopeConfig) Validate() error {
	if c.MaxGuardsPerScope < 0 {
		return errors.New("max guards per scope must be non-negative")
	}
	return nil
}

// WithMaxGuardsPerScope 设置单个作用域的最大守卫数
func (c ScopeConfig) WithMaxGuardsPerScope(n int) ScopeConfig {
	c.MaxGuardsPerScope = n
	return c
}
