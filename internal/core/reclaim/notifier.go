package reclaim

import (
	"reflect"
	"runtime"
	"sync"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// runtimeNotifier 基于 runtime.AddCleanup 的生产级通知器
//
// 对被监视对象不持有强引用:AddCleanup 附着在对象本体上,
// 回调与参数均不捕获对象,因此监视行为不影响对象的可达性。
type runtimeNotifier struct{}

// Runtime 返回基于宿主垃圾回收器的不可达通知器
//
// 返回:
//   - interfaces.ReclaimNotifier: 生产环境默认实现
func Runtime() pkgif.ReclaimNotifier {
	return runtimeNotifier{}
}

// Name 返回通知器名称
func (runtimeNotifier) Name() string {
	return "runtime"
}

// Watch 注册对象不可达回调
//
// 对象被垃圾回收器判定不可达后,fn 在运行时管理的 goroutine 上
// 至多执行一次。回调不得捕获 obj,否则通知永不触发。
//
// 参数:
//   - obj: 被监视对象,必须是指向堆对象的非 nil 指针
//   - fn: 不可达回调
//
// 返回:
//   - interfaces.CancelFunc: 幂等的取消函数
//   - error: 参数非法时返回对应错误
func (runtimeNotifier) Watch(obj any, fn func()) (pkgif.CancelFunc, error) {
	if fn == nil {
		return nil, types.ErrNilAction
	}
	if obj == nil {
		return nil, types.ErrNilWatched
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer {
		return nil, types.ErrNotPointer
	}
	if v.IsNil() {
		return nil, types.ErrNilWatched
	}

	// 以 *byte 视角附着清理回调,不关心对象具体类型
	ptr := (*byte)(v.UnsafePointer())
	c := runtime.AddCleanup(ptr, func(struct{}) { fn() }, struct{}{})

	var once sync.Once
	return func() {
		once.Do(c.Stop)
	}, nil
}
