// Package mocks 提供统一的测试 Mock 实现
//
// 本包提供标准化的测试双（Test Doubles），覆盖子系统依赖的
// 全部宿主侧接口。新测试应优先使用这些统一 Mock，以保持
// 一致性和可维护性。
//
// # 核心 Mock
//
//   - MockNotifier: 模拟 interfaces.ReclaimNotifier，支持显式触发与监视记录
//   - MockErrorSink: 模拟 interfaces.ErrorSink，记录收到的清理失败事件
//   - MockMetrics: 模拟 interfaces.MetricsReporter，按指标名计数
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
// 3. 并发安全: 所有记录都加锁，可在后台清理 goroutine 中安全使用
//
// # 使用示例
//
// 基础用法:
//
//	import "github.com/dep2p/go-lifecycle/tests/mocks"
//
//	func TestWithNotifier(t *testing.T) {
//	    notifier := mocks.NewMockNotifier()
//	    sys := testutil.NewTestSubsystem(t).WithNotifier(notifier).Start()
//	    // ... 注册之后
//	    notifier.FireAll() // 模拟全部对象不可达
//	}
//
// 自定义行为:
//
//	func TestWatchRejection(t *testing.T) {
//	    notifier := &mocks.MockNotifier{
//	        WatchFunc: func(obj any, fn func()) (interfaces.CancelFunc, error) {
//	            return nil, errors.New("watch unavailable")
//	        },
//	    }
//	    // ...
//	}
//
// 验证调用:
//
//	sink := mocks.NewMockErrorSink()
//	// ... 触发一次失败清理
//	if len(sink.Events()) != 1 {
//	    t.Error("expected 1 reported failure")
//	}
package mocks
