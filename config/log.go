package config

import (
	"fmt"
)

// 日志输出格式
const (
	// LogFormatText 文本格式输出
	LogFormatText = "text"

	// LogFormatJSON JSON 格式输出
	LogFormatJSON = "json"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别
	//
	// 可选值：debug / info / warn / error
	Level string `json:"level"`

	// Format 输出格式
	//
	// 可选值：text / json
	Format string `json:"format"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",        // 日志级别：info
		Format: LogFormatText, // 输出格式：文本
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Level)
	}
	switch c.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format: %q", c.Format)
	}
	return nil
}

// WithLevel 设置日志级别
func (c LogConfig) WithLevel(level string) LogConfig {
	c.Level = level
	return c
}

// WithFormat 设置日志输出格式
func (c LogConfig) WithFormat(format string) LogConfig {
	c.Format = format
	return c
}
