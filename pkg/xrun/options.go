package xrun

import (
	"log/slog"
	"os"
)

// Option 配置 Group 的选项函数。
type Option func(*groupOptions)

type groupOptions struct {
	logger          *slog.Logger
	signals         []os.Signal
	noSignalHandler bool
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger 设置生命周期事件的日志记录器。默认丢弃所有日志。
// 传入 nil 时保持默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSignals 设置 Run/RunWithOptions 监听的信号列表。
// 默认监听 DefaultSignals()。
func WithSignals(signals []os.Signal) Option {
	// 创建时拷贝，调用方后续修改切片不影响已有配置
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signals = copied
	}
}

// WithoutSignalHandler 禁用自动信号处理，调用方自行管理信号。
func WithoutSignalHandler() Option {
	return func(o *groupOptions) {
		o.noSignalHandler = true
	}
}
