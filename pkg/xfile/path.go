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
// 同时将 '/' 和 '\' 视为分隔符，即使在 Linux 上也拒绝 Windows 风格的穿越写法。
// 不能简单使用 strings.Contains(path, "..")，那会误伤 "app..2024.log" 这类合法文件名。
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

// SanitizePath 对日志文件路径做格式校验并返回规范化结果。
//
// 校验内容：
//   - 拒绝空路径与包含空字节的路径
//   - 拒绝以 "/" 或 "\" 结尾的显式目录路径（必须在 filepath.Clean 之前检查，
//     因为 Clean 会移除尾部斜杠）
//   - 拒绝规范化后仍包含 ".." 路径段的相对路径穿越
//   - 拒绝没有文件名部分的路径
//
// 绝对路径中的 ".." 会被 filepath.Clean 正常解析（"/var/log/../tmp/a.log"
// 是合法的绝对路径，不是穿越）。本函数只做格式净化，不做目录隔离。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)

	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}

	return cleaned, nil
}
