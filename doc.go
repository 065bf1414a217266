// Package lifecycle 提供确定性的资源生命周期管理
//
// go-lifecycle 把资源的释放路径拆成两层：显式路径保证确定性，
// 隐式路径提供尽力而为的安全网。两条路径对同一次注册至多
// 执行一次清理，以先到者为准。
//
// # 核心概念
//
// 围绕三个核心概念构建：
//
//   - Scope/Guard: 显式释放路径。作用域按 LIFO 顺序释放守卫，
//     首个失败为主错误，其余失败作为被抑制错误挂载
//   - Registry/Registration: 安全网。对象不可达后清理动作被
//     自动执行；显式 RunNow 与安全网对同一注册互斥仲裁
//   - KeyMap/Cache: 弱引用容器。条目不会阻止键/值被回收，
//     回收后条目最终自动消失
//
// # 快速开始
//
//	import "github.com/dep2p/go-lifecycle"
//
//	// 1. 创建并启动子系统
//	sys, err := lifecycle.New(
//	    lifecycle.WithPreset(lifecycle.PresetNameServer),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sys.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Close()
//
//	// 2. 显式路径：作用域内申请资源，退出时逆序释放
//	err = sys.Scoped("load-index", func(sc *lifecycle.Scope) error {
//	    f, _, err := lifecycle.Acquire(sc, file, closeFile)
//	    if err != nil {
//	        return err
//	    }
//	    return parse(f)
//	})
//
//	// 3. 安全网：对象不可达后自动执行清理
//	reg, err := sys.Register(conn, conn.teardown)
//	defer reg.RunNow() // 显式触发仍然优先
//
// # API 层次结构
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│  入口层                                                          │
//	│  ┌───────────┐                                                   │
//	│  │ Subsystem │  lifecycle.New() / lifecycle.Start()             │
//	│  └───────────┘                                                   │
//	├─────────────────────────────────────────────────────────────────┤
//	│  显式路径                          隐式安全网                     │
//	│  ┌────────┐  ┌────────┐          ┌──────────┐ ┌──────────────┐  │
//	│  │ Scope  │──│ Guard  │          │ Registry │─│ Registration │  │
//	│  └────────┘  └────────┘          └──────────┘ └──────────────┘  │
//	│  sys.NewScope() / sys.Scoped()   sys.Register()                 │
//	├─────────────────────────────────────────────────────────────────┤
//	│  弱引用容器                                                      │
//	│  ┌────────┐  ┌───────┐                                          │
//	│  │ KeyMap │  │ Cache │  lifecycle.NewKeyMap() / NewCache()      │
//	│  └────────┘  └───────┘                                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│  宿主能力                                                        │
//	│  ┌─────────────────┐                                            │
//	│  │ ReclaimNotifier │  runtime / manual / disabled               │
//	│  └─────────────────┘                                            │
//	└─────────────────────────────────────────────────────────────────┘
//
// # 文件组织
//
//   - lifecycle.go: 版本信息
//   - subsystem.go: Subsystem 门面与构造
//   - subsystem_lifecycle.go: Start/Stop/Close 生命周期
//   - subsystem_observe.go: 清理失败与守卫释放回调
//   - scoped.go: 作用域辅助函数与泛型资源申请
//   - options.go: Option 配置函数
//   - presets.go: 预设配置
//   - types.go: 公共类型别名
//   - errors.go: 公共错误
//   - fx.go: 内部组件装配
//
// # 两条路径的分工
//
// 显式路径（Scope/Guard、RunNow）是唯一有确定性保证的路径，
// 正确性攸关的资源（持久化状态、锁、需要有序关闭的连接）
// 必须走显式路径。
//
// 隐式安全网只兜住"忘了释放"的泄漏：通知依赖宿主回收机制，
// 只保证最终发生，进程退出时可能完全不发生。
//
// # 并发安全
//
// 所有公开类型均为并发安全。同一守卫/注册被并发触发时，
// 恰好一个调用执行清理，其余调用空操作返回 nil。
package lifecycle
