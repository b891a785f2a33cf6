// Package xfile 提供日志目标路径的基础文件工具。
//
// # 核心功能
//
//   - [SanitizePath]: 路径格式净化（空字节、相对路径穿越、目录路径）
//   - [EnsureDir]: 确保文件的父目录存在（默认权限 0750）
//
// # 安全边界
//
// SanitizePath 仅做格式净化，不做目录隔离：绝对路径中的 ".." 会被
// filepath.Clean 正常解析，这是合法路径而非穿越。日志目标路径由
// 配置方给出，属于可信输入，这里只拦截明显的拼接错误。
package xfile
