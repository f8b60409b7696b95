package xrotate

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/omeyang/logpipe/pkg/xfile"
)

// 默认值与上限
const (
	// DefaultMaxCount 默认保留的最大代次数（含活动日志）。
	DefaultMaxCount = 10

	// maxCountLimit 最大代次数的硬上限，避免异常配置导致目录扫描
	// 和重命名链条失控。
	maxCountLimit = 1024
)

// Compressor 就地压缩单个代次文件。
//
// 实现负责决定输出文件名（通常是在原路径上追加扩展名）并删除
// 未压缩的原文件。压缩失败时原文件应保持可读。
type Compressor interface {
	Compress(ctx context.Context, path string) error
}

// Option 定义 Rotator 的可选配置。
type Option func(*options)

// options Rotator 的内部配置集合
type options struct {
	maxCount   int
	compressor Compressor
	logger     *slog.Logger
	dirPerm    fs.FileMode
}

// defaultOptions 返回默认配置。
func defaultOptions() *options {
	return &options{
		maxCount: DefaultMaxCount,
		logger:   slog.New(slog.DiscardHandler),
		dirPerm:  xfile.DefaultDirPerm,
	}
}

// WithMaxCount 设置保留的最大代次数（含活动日志本身）。
//
// n 为 1 时不保留任何历史，轮转只会删除旧的活动日志；
// n 小于等于 0 时按 1 处理。超过上限时 New 返回 ErrMaxCountTooLarge。
func WithMaxCount(n int) Option {
	return func(o *options) {
		o.maxCount = n
	}
}

// WithCompressor 设置轮转后对索引 0 代次执行的压缩器。
// 传入 nil 表示不压缩。
func WithCompressor(c Compressor) Option {
	return func(o *options) {
		o.compressor = c
	}
}

// WithLogger 设置结构化日志记录器，用于输出每一步轮转动作。
// 默认丢弃所有日志。传入 nil 时保持默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDirPerm 设置自动创建日志目录时使用的权限，默认 0750。
func WithDirPerm(perm fs.FileMode) Option {
	return func(o *options) {
		o.dirPerm = perm
	}
}
