package scope

import (
	"fmt"

	"github.com/dep2p/go-lifecycle/pkg/types"
)

// Acquire 获取资源并武装释放守卫
//
// 把"获取即登记释放"压缩为一步,资源原样透传以便链式使用:
//
//	f, g, err := scope.Acquire(s, file, (*os.File).Close)
//
// 守卫名称取资源的动态类型名。
//
// 参数:
//   - s: 目标作用域
//   - res: 已获取的资源
//   - release: 释放动作,接收 res
//
// 返回:
//   - T: 原样透传的 res
//   - *Guard: 新守卫
//   - error: 作用域已关闭或 release 为 nil 时返回对应错误
func Acquire[T any](s *Scope, res T, release func(T) error) (T, *Guard, error) {
	return AcquireNamed(s, fmt.Sprintf("%T", res), res, release)
}

// AcquireNamed 以指定守卫名称获取资源
//
// 参数:
//   - s: 目标作用域
//   - name: 守卫名称,用于事件与日志
//   - res: 已获取的资源
//   - release: 释放动作,接收 res
//
// 返回:
//   - T: 原样透传的 res
//   - *Guard: 新守卫
//   - error: 作用域已关闭或 release 为 nil 时返回对应错误
func AcquireNamed[T any](s *Scope, name string, res T, release func(T) error) (T, *Guard, error) {
	if release == nil {
		return res, nil, types.ErrNilRelease
	}
	g, err := s.Defer(name, func() error { return release(res) })
	return res, g, err
}
