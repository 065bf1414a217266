// Package types 定义 go-lifecycle 的公共数据结构
//
// 这是整个子系统的最底层包，不依赖任何其他 go-lifecycle 内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 职能
//
// pkg/types 的职能是定义 **Go 内部数据结构**：
//   - 模块间数据传递
//   - API 参数/返回值
//   - 状态枚举、事件类型、统计结构
//
// # 文件组织
//
// 基础类型:
//   - ids.go           - ResourceID, RegistrationID
//   - states.go        - LifeState, Trigger
//   - errors.go        - 公共错误定义
//   - release_error.go - ReleaseError（主错误 + 被抑制错误链）
//
// 观测类型:
//   - stats.go  - RegistryStats, ScopeStats, CacheStats, SubsystemStats
//   - events.go - EvtCleanupRan, EvtGuardReleased
//
// # 类型分类
//
// ID 类型:
//   - ResourceID     - 资源唯一标识（UUID 派生，不透明）
//   - RegistrationID - 清理注册标识（单调递增，Base58 编码）
//
// 枚举类型:
//   - LifeState - 生命周期状态（Armed/Releasing/Inert）
//   - Trigger   - 释放触发来源（Explicit/ScopeExit/Unreachable）
//
// # 设计原则
//
//  1. 不可变性：类型创建后尽量不可修改，使用值类型
//  2. 可比较性：实现 Equal 方法，支持作为 map key
//  3. 零依赖：不依赖任何其他 go-lifecycle 内部包（最底层）
//
// # 使用示例
//
//	import "github.com/dep2p/go-lifecycle/pkg/types"
//
//	// 生成资源 ID
//	id := types.NewResourceID()
//
//	// 判定错误类别
//	if errors.Is(err, types.ErrDoubleRegistration) {
//	    // 同一对象重复注册
//	}
//
//	// 提取被抑制的释放错误
//	var rerr *types.ReleaseError
//	if errors.As(err, &rerr) {
//	    for _, sup := range rerr.Suppressed() {
//	        // ...
//	    }
//	}
package types
