package testutil

import (
	"context"
	"runtime"
	"testing"
	"time"
)

// WaitForCondition 等待条件满足或超时
//
// 参数：
//   - t: 测试对象
//   - timeout: 超时时间
//   - interval: 检查间隔
//   - condition: 条件函数，返回 true 表示条件满足
//
// 返回：条件是否满足（超时返回 false）
func WaitForCondition(t *testing.T, timeout time.Duration, interval time.Duration, condition func() bool) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 立即检查一次
	if condition() {
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if condition() {
				return true
			}
		}
	}
}

// WaitForConditionOrFail 等待条件满足，超时则 fail 测试
func WaitForConditionOrFail(t *testing.T, timeout time.Duration, interval time.Duration, condition func() bool, msg string) {
	t.Helper()

	if !WaitForCondition(t, timeout, interval, condition) {
		t.Fatalf("等待超时: %s", msg)
	}
}

// Eventually 在指定时间内重试条件检查
//
// 使用默认间隔 20ms。
//
// 示例:
//
//	testutil.Eventually(t, 2*time.Second, func() bool {
//	    return registry.Len() == 0
//	}, "注册应全部清除")
func Eventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	WaitForConditionOrFail(t, timeout, 20*time.Millisecond, condition, msg)
}

// EventuallyReclaimed 等待不可达触发的清理生效
//
// 每轮检查前主动触发一次 GC，加速运行时回收模式下的
// 不可达检测；手动回收模式下等价于 Eventually。
//
// 示例:
//
//	leaked = nil
//	testutil.EventuallyReclaimed(t, 5*time.Second, func() bool {
//	    return counter.Load() == 1
//	}, "安全网清理应执行")
func EventuallyReclaimed(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	WaitForConditionOrFail(t, timeout, 20*time.Millisecond, func() bool {
		runtime.GC()
		return condition()
	}, msg)
}

// Sleep 等待指定时间（用于测试中的简单延迟）
func Sleep(d time.Duration) {
	time.Sleep(d)
}
