// Package reclaim 提供不可达回收通知能力
//
// reclaim 是清理子系统对宿主运行时"对象不可达"事件的抽象封装。
// 上层组件(cleaner/weakcache)只依赖 interfaces.ReclaimNotifier 接口,
// 不直接接触 runtime 包,从而可以在测试或受限环境中替换通知实现。
//
// # 通知器实现
//
//   - Runtime: 基于 runtime.AddCleanup 的生产实现,对象被垃圾回收器
//     判定不可达后回调触发(尽力而为,时机不确定)
//   - NewManual: 测试用实现,由调用方显式触发,完全确定
//   - Disabled: 降级实现,永不触发,仅保留显式清理路径
//
// # 语义约定
//
// Watch 注册的回调满足以下约定:
//
//   - 至多触发一次,触发时机与线程不确定
//   - 回调不得捕获被监视对象本身,否则对象永远可达,通知永不触发
//   - 返回的 CancelFunc 幂等,取消后回调不再触发
//   - 进程退出前不保证触发(不可用于释放进程外资源的唯一手段)
//
// # 快速开始
//
//	notifier := reclaim.Runtime()
//	cancel, err := notifier.Watch(obj, func() {
//	    // obj 已不可达,执行兜底清理
//	})
//	if err != nil {
//	    return err
//	}
//	defer cancel()
//
// # 架构定位
//
//	┌──────────────────────────────┐
//	│   cleaner / weakcache        │  ← 消费不可达通知
//	├──────────────────────────────┤
//	│   interfaces.ReclaimNotifier │  ← 能力抽象
//	├──────────────────────────────┤
//	│   reclaim (本包)             │  ← Runtime/Manual/Disabled
//	├──────────────────────────────┤
//	│   runtime.AddCleanup         │  ← 宿主运行时
//	└──────────────────────────────┘
package reclaim
