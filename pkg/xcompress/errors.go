package xcompress

import "errors"

// 包级错误定义
var (
	// ErrEmptyCommand 表示压缩命令为空或只含空白。
	ErrEmptyCommand = errors.New("xcompress: empty command")

	// ErrToolNotFound 表示在 PATH 中找不到压缩工具的可执行文件。
	ErrToolNotFound = errors.New("xcompress: tool not found")
)
