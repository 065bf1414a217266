package reclaim

import (
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// disabledNotifier 永不触发的降级通知器
//
// 在宿主环境不提供可靠不可达回调时使用。注册本身仍做参数校验,
// 保证调用方在两种模式下看到一致的错误行为,但回调永不执行,
// 清理完全依赖显式路径。
type disabledNotifier struct{}

// Disabled 返回降级模式通知器
//
// 返回:
//   - interfaces.ReclaimNotifier: 永不触发的实现
func Disabled() pkgif.ReclaimNotifier {
	return disabledNotifier{}
}

// Name 返回通知器名称
func (disabledNotifier) Name() string {
	return "disabled"
}

// Watch 校验参数并返回空操作取消函数
//
// 参数:
//   - obj: 被监视对象,必须是非 nil 指针
//   - fn: 不可达回调,永不执行
//
// 返回:
//   - interfaces.CancelFunc: 空操作取消函数
//   - error: 参数非法时返回对应错误
func (disabledNotifier) Watch(obj any, fn func()) (pkgif.CancelFunc, error) {
	if fn == nil {
		return nil, types.ErrNilAction
	}
	if _, err := IdentityOf(obj); err != nil {
		return nil, err
	}
	return func() {}, nil
}
