package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 按段精确判断而非 strings.Contains，避免误伤合法文件名（如 "app..2024.log"）。
// 同时将 '/' 和 '\' 视为分隔符，以拦截跨平台拼接错误。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对文件路径进行格式净化和规范化。
//
// 功能：
//   - 路径规范化（消除 "." 和冗余斜杠）
//   - 拒绝空路径、包含空字节的路径
//   - 拒绝相对路径穿越（规范化后仍含 ".." 路径段）
//   - 拒绝显式目录路径（以 "/" 或 "\" 结尾）
//
// 返回规范化后的路径，或格式无效时的错误。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}

	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 尾部分隔符检查必须在 Clean 之前：Clean 会移除尾部斜杠。
	// Linux 上以 "\" 结尾的文件名理论上合法，但几乎总是跨平台拼接错误，统一拒绝。
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)

	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path %q: %w", filename, ErrPathTraversal)
	}

	return cleaned, nil
}
