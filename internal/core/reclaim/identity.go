package reclaim

import (
	"reflect"

	"github.com/dep2p/go-lifecycle/pkg/types"
)

// IdentityOf 计算被监视对象的身份标识
//
// 身份标识是对象的指针值,仅用于去重比较,绝不解引用。
// 同一对象的多次调用返回相同标识;不同存活对象的标识互不相同。
//
// 参数:
//   - obj: 被监视对象,必须是非 nil 指针
//
// 返回:
//   - uintptr: 身份标识
//   - error: obj 为 nil 时返回 types.ErrNilWatched,非指针时返回 types.ErrNotPointer
func IdentityOf(obj any) (uintptr, error) {
	if obj == nil {
		return 0, types.ErrNilWatched
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer {
		return 0, types.ErrNotPointer
	}
	if v.IsNil() {
		return 0, types.ErrNilWatched
	}
	return v.Pointer(), nil
}
