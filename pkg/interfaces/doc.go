// Package interfaces 定义 go-lifecycle 的公共接口
//
// 本包是调用方与内部实现之间的契约层，采用扁平命名
// （一个接口文件 = 一个实现目录）：
//
// # 清理注册接口
//
//   - cleanup.go - CleanupRegistry / Registration（安全网清理）
//
// # 宿主能力接口
//
//   - reclaim.go - ReclaimNotifier（不可达通知原语，宿主注入）
//
// # 观测接口
//
//   - observe.go - ErrorSink（隐式路径错误接收）
//   - metrics.go - MetricsReporter（指标上报）
//
// # 设计原则
//
//  1. 接口最小化：只暴露调用方需要的操作
//  2. 实现无关：不泄漏内部结构，参数/返回值使用 pkg/types
//  3. 依赖方向：internal/core/* 实现本包接口，向上由门面装配
//
// # 背向引用约束（重要）
//
// 注册到 CleanupRegistry 的清理动作 **绝不允许捕获被观察对象本身**。
// 清理动作持有被观察对象会使其永远可达，不可达检测永远不会触发，
// 安全网机制随之失效。正确做法是把需要清理的状态放进一个独立的
// 伴生对象（sibling state），清理动作只引用伴生对象：
//
//	type conn struct {
//	    state *connState // 伴生状态，持有真正要关闭的句柄
//	}
//
//	// 正确：动作只捕获 state，不捕获 c
//	state := c.state
//	reg, _ := registry.Register(c, func() error { return state.close() })
//
// 该约束无法被子系统静态检测，属于调用方契约。
package interfaces
