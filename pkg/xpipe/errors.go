package xpipe

import "errors"

// 包级错误定义
var (
	// ErrUnknownOwner 表示属主既不是已知用户名也不是数字 UID。
	ErrUnknownOwner = errors.New("xpipe: unknown owner")

	// ErrUnknownGroup 表示属组既不是已知组名也不是数字 GID。
	ErrUnknownGroup = errors.New("xpipe: unknown group")
)
