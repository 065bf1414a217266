// Package scope 提供作用域化的资源释放守卫
//
// scope 是显式释放路径的实现:资源获取时武装守卫(Guard),
// 作用域(Scope)关闭时按获取的严格逆序逐个回卷,与依赖方向相反。
// 每个守卫的释放动作恰好执行一次,显式释放与作用域回卷的竞争
// 由守卫状态机的原子推进裁决。
//
// # 抑制链
//
// 回卷中的多个失败不会互相覆盖,而是合并为一条错误链
// (types.ReleaseError):
//
//   - 主体错误始终是主错误
//   - 主体无错时,第一个释放失败晋升为主错误
//   - 其余失败按发生顺序被抑制,errors.Is/As 可见
//
// # 快速开始
//
//	func copyFile(tracker *scope.Tracker, src, dst string) (err error) {
//	    s := tracker.NewScope("copy-file")
//	    defer s.CloseWith(&err)
//
//	    in, _, err := scope.Acquire(s, mustOpen(src), (*os.File).Close)
//	    if err != nil {
//	        return err
//	    }
//	    out, _, err := scope.Acquire(s, mustCreate(dst), (*os.File).Close)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = io.Copy(out, in)
//	    return err
//	}
//
// # 所有权转移
//
// Detach 把守卫移出作用域,释放责任转移给调用方;
// 典型用法是"构造成功后交付,构造失败则回卷":
//
//	s := tracker.NewScope("build-conn")
//	conn, g, err := scope.Acquire(s, dial(), (*Conn).Close)
//	if err != nil {
//	    return nil, s.CloseErr(err)
//	}
//	g.Detach()
//	_ = s.Close()
//	return conn, nil
//
// # 架构定位
//
//	┌──────────────────────────────┐
//	│   facade (Subsystem)         │  ← 组合追踪器与注册表
//	├──────────────────────────────┤
//	│   scope (本包)               │  ← Tracker / Scope / Guard
//	├──────────────────────────────┤
//	│   pkg/types                  │  ← 状态机 / 错误链 / 事件
//	└──────────────────────────────┘
//
// # 并发安全
//
// Tracker、Scope、Guard 的全部导出方法并发安全。
// 观测回调在释放发生的 goroutine 上同步执行,必须快速返回。
package scope
