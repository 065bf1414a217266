package log

// 环境变量日志配置
//
// 支持在不改代码的前提下调整日志行为：
//   - LIFECYCLE_LOG_LEVEL: 日志级别，支持按组件配置
//     格式: 组件=级别,组件=级别,默认级别
//     示例: core/cleaner=debug,core/scope=warn,info
//   - LIFECYCLE_LOG_FORMAT: 日志格式 (text 或 json)
//
// 环境变量只在进程启动时读取一次；宿主随后通过
// SetDefault / SetLevel 所做的设置不受影响，
// 但按组件的级别门控始终生效。

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// envConfig 环境变量解析结果
type envConfig struct {
	// defaultLevel 默认级别；nil 表示未配置
	defaultLevel *slog.Level

	// componentLevels 各组件的级别覆盖
	componentLevels map[string]slog.Level

	// jsonFormat 是否输出 JSON 格式
	jsonFormat bool
}

var (
	envCache *envConfig
	envOnce  sync.Once
)

// envFromOS 从环境变量解析配置，结果缓存
func envFromOS() *envConfig {
	envOnce.Do(func() {
		envCache = parseEnv(
			os.Getenv("LIFECYCLE_LOG_LEVEL"),
			os.Getenv("LIFECYCLE_LOG_FORMAT"),
		)
	})
	return envCache
}

// parseEnv 解析环境变量内容
func parseEnv(levelStr, formatStr string) *envConfig {
	cfg := &envConfig{
		componentLevels: make(map[string]slog.Level),
	}

	for _, part := range strings.Split(levelStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if component, levelName, ok := strings.Cut(part, "="); ok {
			// 组件级别: component=level
			component = strings.TrimSpace(component)
			if lvl, ok := parseLevelName(strings.TrimSpace(levelName)); ok {
				cfg.componentLevels[component] = lvl
			}
		} else if lvl, ok := parseLevelName(part); ok {
			// 默认级别
			cfg.defaultLevel = &lvl
		}
	}

	cfg.jsonFormat = strings.EqualFold(formatStr, "json")
	return cfg
}

// parseLevelName 解析日志级别名称
func parseLevelName(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// componentEnabled 判定组件在指定级别是否允许输出
//
// 组件未被环境变量覆盖时返回 true，由默认 handler 判定。
func componentEnabled(component string, level slog.Level) bool {
	cfg := envFromOS()
	if lvl, ok := cfg.componentLevels[component]; ok {
		return level >= lvl
	}
	return true
}

// applyEnv 按环境变量构建默认 logger
//
// 只在有相关环境变量时替换默认 logger，否则保持调用方已有设置。
func applyEnv() {
	cfg := envFromOS()
	if cfg.defaultLevel == nil && !cfg.jsonFormat {
		return
	}

	level := slog.LevelInfo
	if cfg.defaultLevel != nil {
		level = *cfg.defaultLevel
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.jsonFormat {
		SetDefault(NewJSON(os.Stderr, opts))
		return
	}
	SetDefault(New(os.Stderr, opts))
}
