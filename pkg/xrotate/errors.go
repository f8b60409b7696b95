package xrotate

import "errors"

// 包级错误定义
var (
	// ErrMaxCountTooLarge 表示最大代次数超过允许的上限。
	ErrMaxCountTooLarge = errors.New("xrotate: max count exceeds limit")
)
