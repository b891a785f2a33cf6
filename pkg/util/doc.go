// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件路径工具，路径格式净化、父目录创建
//
// 设计原则：
//   - 提供日志目标路径所需的最小文件操作封装
//   - 安全处理空字节与相对路径穿越
//   - 跨平台兼容
package util
