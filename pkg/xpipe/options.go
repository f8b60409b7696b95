package xpipe

import (
	"io/fs"
	"log/slog"
)

// DefaultFileMode 新建日志文件的默认权限。
const DefaultFileMode fs.FileMode = 0o600

// Option 定义 Copier 的可选配置。
type Option func(*options)

// options Copier 的内部配置集合
type options struct {
	mode    fs.FileMode
	modeSet bool
	owner   string
	group   string
	logger  *slog.Logger
}

// defaultOptions 返回默认配置。
func defaultOptions() *options {
	return &options{
		mode:   DefaultFileMode,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithFileMode 设置日志文件的权限位。
//
// 默认只在创建新文件时生效（0600）；显式设置后无论文件是否已存在
// 都会在打开后执行 chmod。
func WithFileMode(mode fs.FileMode) Option {
	return func(o *options) {
		o.mode = mode
		o.modeSet = true
	}
}

// WithOwner 设置日志文件的属主，接受用户名或数字 UID。
// 空字符串表示不修改属主。通常需要相应的系统权限。
func WithOwner(owner string) Option {
	return func(o *options) {
		o.owner = owner
	}
}

// WithGroup 设置日志文件的属组，接受组名或数字 GID。
// 空字符串表示不修改属组。
func WithGroup(group string) Option {
	return func(o *options) {
		o.group = group
	}
}

// WithLogger 设置结构化日志记录器。默认丢弃所有日志。
// 传入 nil 时保持默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
