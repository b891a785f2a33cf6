// Package xsink 定义结构化日志记录的输出端及其解析。
//
// # 核心概念
//
//   - [Record]: 一条结构化日志记录（时间、级别、消息、上下文字段）
//   - [Sink]: 接受 Record 的输出端（控制台渲染器、轮转文件写入器）
//   - [Descriptor]: sink 及其级别过滤器（阈值过滤或精确过滤）
//   - [Resolve]: 把 ResolvedConfig 翻译为固定顺序的 sink 计划
//
// # Sink 计划的固定顺序
//
// pretty 控制台（若启用）→ 主文件（若有目标）→ 级别专属文件按
// fatal → trace 顺序。该顺序决定路由时的遍历顺序，不表示优先级。
//
// # 阈值过滤与精确过滤
//
// pretty/主文件是"至少这么严重"的阈值输出；级别专属文件是单一严重度的
// 切片——error 文件只收 error 事件，fatal 事件不会混入，
// 便于针对单个级别做专项监控而不被更高级别的事件刷屏。
//
// # 错误语义
//
// sink 构造失败同步返回 [ErrSinkConstruction]，且不回滚此前已构造的
// sink（部分构造可见，由调用方决定关闭或继续）。Write 失败由调用方
// （路由器）消化，sink 自身不重试、不 panic。
package xsink
