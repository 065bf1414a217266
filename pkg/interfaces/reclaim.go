// Package interfaces 定义 go-lifecycle 公共接口
//
// 本文件定义 ReclaimNotifier 接口，抽象宿主的不可达通知能力。
package interfaces

// CancelFunc 取消一次不可达监视
//
// 幂等，可并发调用。取消后监视回调不再触发
// （已经开始执行的回调不会被打断）。
type CancelFunc func()

// ReclaimNotifier 定义不可达通知原语接口
//
// 这是子系统唯一无法自行实现、必须从运行时获得的能力：
// 在对象不再被程序其他部分引用之后（事后地）得到通知。
//
// 实现约定：
//   - fn 至多触发一次，在某个未指定的 goroutine 上执行
//   - fn 绝不允许捕获 obj（否则 obj 永远可达，通知永不触发）
//   - 通知只保证"最终"，不保证及时；进程退出可能跳过全部通知
//
// 内置实现（internal/core/reclaim）：
//   - Runtime()  - 基于 runtime.AddCleanup 的默认实现
//   - Manual()   - 确定性测试替身，由测试代码显式触发
//   - Disabled() - 降级模式：监视成功但永不触发，仅显式路径可用
//
// 降级模式是合法配置而非故障：宿主缺少回收钩子时，
// 显式释放路径完全不受影响。
type ReclaimNotifier interface {
	// Watch 监视对象的不可达事件
	//
	// 参数:
	//   - obj: 被监视对象，必须是非空指针
	//   - fn: 不可达后执行的回调
	//
	// 返回:
	//   - CancelFunc: 取消监视
	//   - error: obj 非指针时返回 types.ErrNotPointer
	Watch(obj any, fn func()) (CancelFunc, error)

	// Name 返回实现名称（runtime / manual / disabled）
	Name() string
}
