package lifecycle

import (
	"github.com/dep2p/go-lifecycle/internal/core/scope"
)

// ════════════════════════════════════════════════════════════════════════════
//                              作用域辅助
// ════════════════════════════════════════════════════════════════════════════

// Scoped 在临时作用域内执行函数
//
// 创建作用域、执行 fn、关闭作用域，三步合一。
// fn 返回的错误为主错误，回卷中的释放失败作为被抑制错误
// 挂载；fn 成功而回卷失败时，首个释放失败成为主错误。
// fn panic 时作用域同样被回卷，panic 继续向上传播。
//
// 示例：
//
//	err := sys.Scoped("load-index", func(sc *lifecycle.Scope) error {
//	    f, _, err := lifecycle.Acquire(sc, openFile(path), closeFile)
//	    if err != nil {
//	        return err
//	    }
//	    return parse(f)
//	})
func (s *Subsystem) Scoped(name string, fn func(*Scope) error) (err error) {
	sc, cerr := s.NewScope(name)
	if cerr != nil {
		return cerr
	}
	defer sc.CloseWith(&err)

	return fn(sc)
}

// ════════════════════════════════════════════════════════════════════════════
//                              泛型资源申请
// ════════════════════════════════════════════════════════════════════════════

// Acquire 申请资源并把释放动作托管给作用域
//
// 返回资源本身与对应的守卫。守卫名称取资源的类型名。
//
// 参数:
//   - sc: 目标作用域
//   - res: 资源
//   - release: 释放函数，不可为空
func Acquire[T any](sc *Scope, res T, release func(T) error) (T, *Guard, error) {
	return scope.Acquire(sc, res, release)
}

// AcquireNamed 申请资源并指定守卫名称
//
// 与 Acquire 相同，但使用显式名称代替类型名。
func AcquireNamed[T any](sc *Scope, name string, res T, release func(T) error) (T, *Guard, error) {
	return scope.AcquireNamed(sc, name, res, release)
}
