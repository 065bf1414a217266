// Package cleaner 实现安全网清理注册表
//
// cleaner 把"被观察对象"与"清理动作"关联:动作恰好执行一次,
// 由显式 RunNow 或对象不可达触发,以先到者为准。注册表绝不强持有
// 被观察对象,注册本身不会阻止对象被回收。
//
// # 两条触发路径
//
//   - 显式路径: Registration.RunNow 同步执行动作并返回其错误,
//     这是对正确性有要求的调用方应当依赖的唯一路径
//   - 隐式路径: 不可达通知到达后动作移交后台执行器异步执行,
//     失败投递给错误接收器;这条路径是尽力而为的安全网,
//     宿主可能在执行任何待定清理之前终止进程
//
// # 清理动作契约
//
// 动作必须幂等,且绝不允许捕获被观察对象本身;捕获会使对象
// 永远可达,安全网永不触发(契约详见 pkg/interfaces 包文档)。
//
// # 快速开始
//
//	registry := cleaner.New(cleaner.WithErrorSink(sink))
//	defer registry.Close()
//
//	conn := openConn()
//	rawFD := conn.FD()
//	reg, err := registry.Register(conn, func() error {
//	    return closeFD(rawFD) // 只捕获句柄,不捕获 conn
//	})
//	if err != nil {
//	    return err
//	}
//	...
//	_ = reg.RunNow() // 正常路径显式清理
//
// # 内部结构
//
//	┌────────────────────────────────────────────┐
//	│                 Registry                   │
//	│  ┌──────────┐  ┌──────────┐  ┌──────────┐  │
//	│  │ shard 0  │  │ shard 1  │  │ shard N  │  │  ← murmur3 分片
//	│  └──────────┘  └──────────┘  └──────────┘  │
//	│        │              │            │       │
//	│        └──────── sweeper ──────────┘       │  ← goprocess 执行器
//	│             (信号量限并发 + 溢出直跑)      │
//	└────────────────────────────────────────────┘
//
// # 并发安全
//
// Registry 与 Registration 的全部导出方法并发安全;
// RunNow 与不可达触发的竞争由注册项状态机的原子推进裁决。
package cleaner
