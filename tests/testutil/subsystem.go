// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	lifecycle "github.com/dep2p/go-lifecycle"
)

// TestSubsystemBuilder 测试子系统构建器
//
// 使用 Builder 模式简化测试子系统的创建和配置。
//
// 示例:
//
//	sys := testutil.NewTestSubsystem(t).
//		WithPreset("test").
//		Start()
type TestSubsystemBuilder struct {
	t      *testing.T
	preset string
	opts   []lifecycle.Option
}

// NewTestSubsystem 创建测试子系统构建器
//
// 默认配置:
//   - preset: "test"（手动回收模式，单分片，确定性行为）
func NewTestSubsystem(t *testing.T) *TestSubsystemBuilder {
	t.Helper()
	return &TestSubsystemBuilder{
		t:      t,
		preset: lifecycle.PresetNameTest,
	}
}

// WithPreset 设置预设配置
//
// 可选值: "server", "test", "minimal"
func (b *TestSubsystemBuilder) WithPreset(preset string) *TestSubsystemBuilder {
	b.t.Helper()
	b.preset = preset
	return b
}

// WithNotifier 注入自定义不可达通知器
func (b *TestSubsystemBuilder) WithNotifier(n lifecycle.ReclaimNotifier) *TestSubsystemBuilder {
	b.t.Helper()
	b.opts = append(b.opts, lifecycle.WithNotifier(n))
	return b
}

// WithErrorSink 注入清理失败接收器
func (b *TestSubsystemBuilder) WithErrorSink(sink lifecycle.ErrorSink) *TestSubsystemBuilder {
	b.t.Helper()
	b.opts = append(b.opts, lifecycle.WithErrorSink(sink))
	return b
}

// WithOptions 追加任意子系统选项
func (b *TestSubsystemBuilder) WithOptions(opts ...lifecycle.Option) *TestSubsystemBuilder {
	b.t.Helper()
	b.opts = append(b.opts, opts...)
	return b
}

// Start 启动子系统并注册清理函数
//
// 子系统会在测试结束时自动关闭。
func (b *TestSubsystemBuilder) Start() *lifecycle.Subsystem {
	b.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := append([]lifecycle.Option{lifecycle.WithPreset(b.preset)}, b.opts...)

	sys, err := lifecycle.Start(ctx, opts...)
	require.NoError(b.t, err, "启动测试子系统失败")
	require.NotNil(b.t, sys, "子系统不应为 nil")

	b.t.Cleanup(func() {
		if err := sys.Close(); err != nil {
			b.t.Logf("关闭子系统失败: %v", err)
		}
	})

	return sys
}

// StartManualSubsystem 创建手动回收模式的测试子系统
//
// 返回子系统与手动通知器，测试可以确定性地触发不可达清理。
func StartManualSubsystem(t *testing.T, opts ...lifecycle.Option) (*lifecycle.Subsystem, *lifecycle.ManualReclaim) {
	t.Helper()

	manual := lifecycle.NewManualReclaim()
	sys := NewTestSubsystem(t).
		WithNotifier(manual).
		WithOptions(opts...).
		Start()
	return sys, manual
}
