package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirPerm 默认日志目录权限。
//
// 0750：所有者读写执行，组读执行，其他无权限。符合 gosec G301 建议。
const DefaultDirPerm = 0750

// EnsureDir 确保文件的父目录存在，使用默认权限 0750。
// 目录已存在时不报错，也不会修改已有目录的权限。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保文件的父目录存在，使用指定权限递归创建。
//
// filename 是文件路径而非目录路径；perm 必须包含所有者执行位（0100），
// 否则创建出的目录无法进入。底层使用 os.MkdirAll，并发调用同一路径
// 是安全的（目录创建竞态由 MkdirAll 吸收）。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}
