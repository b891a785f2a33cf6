// Package xlevel 定义日志严重级别及其固定全序。
//
// 六个级别按严重程度排序：fatal > error > warn > info > debug > trace。
// 该顺序是固定的，任何配置都不能改变。
//
// # 核心操作
//
//   - [Level.AtLeast]: 阈值比较（"至少与某级别同样严重"）
//   - [ParseLevel]: 从字符串解析（大小写不敏感，接受 "warning" 别名）
//   - [Levels]: 按严重程度从高到低遍历全部级别
//
// Level 实现 encoding.TextMarshaler/TextUnmarshaler，
// 支持配置文件直接序列化/反序列化。
package xlevel
