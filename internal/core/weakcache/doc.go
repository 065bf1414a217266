// Package weakcache 提供弱引用关联容器
//
// weakcache 实现两种"不延长生命周期"的关联结构:
//
//   - KeyMap: 键弱持有。以存活对象为键挂载附属数据,
//     键不可达后条目最终被清除,适合句柄→元数据的旁路关联
//   - ValueCache: 值弱持有。键是普通值(如 ID),值为堆对象,
//     对象不可达后条目最终被清除;可选强引用层(LRU/ARC)
//     保护热点值不被过早回收
//
// # 弱引用语义
//
// 两种容器对弱侧对象都不持有强引用,放入容器不会阻止回收。
// 清除是最终一致的:对象死亡与条目消失之间存在窗口,
// 窗口内 Get 按未命中处理并顺手清除条目。Len 因此是近似值。
//
// # 快速开始
//
//	cache, err := weakcache.NewValueCache[string, Session](
//	    weakcache.WithPolicy(weakcache.PolicyLRU),
//	    weakcache.WithStrongCapacity(128),
//	)
//	if err != nil {
//	    return err
//	}
//	cache.Put("sess-1", sess)
//	if s, ok := cache.Get("sess-1"); ok {
//	    ...
//	}
//
// # 复用身份的防护
//
// ValueCache 的键可以在旧值死亡回调仍在途时换绑新值,
// 条目携带代数计数,过期回调凭代数匹配失败后空操作返回,
// 绝不误删新绑定。KeyMap 的键身份由 weak.Pointer 承载,
// 死对象与新对象的弱指针永不相等,无需代数防护。
//
// # 并发安全
//
// 两种容器的全部导出方法并发安全。
package weakcache
