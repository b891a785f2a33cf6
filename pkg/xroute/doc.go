// Package xroute 实现日志事件到 sink 计划的扇出路由。
//
// # 核心功能
//
//   - [New]: 配置 → 合并默认值 → 解析 sink 计划 → 路由器实例（含清理函数）
//   - [Router.Route]: 合并上下文后把单条事件分发给所有匹配的 sink
//   - [Router.SetLevel]: 运行时调整阈值 sink 的最低级别（精确 sink 不受影响）
//   - [Router.Child]: 携带绑定上下文的派生路由器，共享 sink 计划
//   - 六个级别便捷方法与全局便利函数
//
// # 上下文优先级
//
// 键冲突时：调用方字段 > 派生路由器绑定上下文（子层优先于父层）>
// 基础上下文。record 形态的消息属于调用方输入，但显式 context 参数
// 优先于消息对象自带的键。
//
// # 错误策略
//
// Route 自身从不向调用方返回错误：日志子系统的故障绝不能中断宿主
// 程序。sink 写入失败计入错误计数，并通过可选的 [WithOnError] 回调
// 上报（默认静默继续）。配置错误是唯一在构造期就中止的错误；sink
// 构造失败时 New 同时返回部分构造的路由器与错误，由调用方取舍。
//
// # 全局路由器
//
// 定位：脚手架/小工具等简单场景。在服务端推荐依赖注入（显式持有
// Router）。[Default] 采用 first-caller-wins：单例已存在时，后续调用
// 传入的配置被静默忽略——这是保留的历史语义，新代码建议显式
// [New] + [SetDefault]。[ResetDefault] 清除单例并关闭其持有的 sink
// （单例的清理函数只有注册表自己持有，不关闭就没有人能关闭）；
// [SetDefault] 注入的路由器例外，其清理责任仍在原持有方。
package xroute
