package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"
)

// Group 基于 errgroup + context 管理一次运行中并发服务的启停。
//
// 任一服务返回错误或 context 被取消时，组内所有服务都会收到取消信号。
// Go 和 Cancel 可从多个 goroutine 并发调用，Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建新的 Group，返回 Group 和派生的 context。
// 任一 goroutine 返回错误时派生 context 被取消。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	// nil context 归一化，避免 context.WithCancelCause(nil) panic
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 启动一个 goroutine 执行 fn。
// fn 应监听 ctx.Done() 以响应取消；fn 返回非 nil 错误会取消整个组。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// Cancel 主动取消所有 goroutine，cause 作为取消原因由 Wait 返回。
//
// cause 不应包装 context.Canceled，否则会被 Wait 当作普通取消过滤掉；
// 有语义的退出原因应使用独立错误类型（如 SignalError）。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// Wait 等待所有 goroutine 完成，返回第一个非 nil 错误。
//
// 普通的 context 取消会被过滤为 nil，但 Cancel(cause) 或信号处理
// 设置的显式退出原因（如 *SignalError）会保留并返回，
// 调用方据此把信号退出和真正的故障映射到不同的退出码。
func (g *Group) Wait() error {
	// CancelCauseFunc 幂等，defer 只负责释放 context 资源
	defer g.cancel(nil)

	err := g.eg.Wait()
	g.opts.logger.Debug("all services stopped")

	// 区分取消来源：causeCtx 已取消说明是组级取消（Cancel 或父 context），
	// 此时返回显式 cause；causeCtx 未取消说明 context.Canceled 来自服务内部。
	if errors.Is(err, context.Canceled) {
		if g.causeCtx.Err() != nil {
			if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
				return cause
			}
			return nil
		}
		return err
	}

	// 所有服务返回 nil 时仍需检查显式 Cancel(cause)，退出原因不能丢
	if err == nil && g.causeCtx.Err() != nil {
		if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
	}
	return err
}

// runGroup 是 Run/RunWithOptions 的共享实现，默认注册信号监听服务。
func runGroup(ctx context.Context, opts []Option, setup func(g *Group)) error {
	g, _ := NewGroup(ctx, opts...)

	if !g.opts.noSignalHandler {
		signals := g.opts.signals
		// 空切片等价于 nil：signal.Notify 无参会订阅所有信号，不是预期行为
		if len(signals) == 0 {
			signals = DefaultSignals()
		}

		g.Go(func(ctx context.Context) error {
			testc := testSigChan(ctx)
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, signals...)
			defer signal.Stop(sigCh)

			var sig os.Signal
			select {
			case sig = <-testc:
			case sig = <-sigCh:
			case <-ctx.Done():
				return ctx.Err()
			}

			g.opts.logger.Info("received signal", slog.String("signal", sig.String()))
			g.cancel(&SignalError{Signal: sig})
			return nil
		})
	}

	setup(g)
	return g.Wait()
}

// Run 运行服务函数并监听终止信号。
//
// 收到 DefaultSignals 中的信号时所有服务通过 context 取消协调退出，
// Run 返回 *SignalError。任一服务正常返回（如输入流读到 EOF）也会
// 取消组内其余服务并结束运行，此时 Run 返回 nil。
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, services...)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	return runGroup(ctx, opts, func(g *Group) {
		for _, svc := range services {
			g.Go(g.completing(svc))
		}
	})
}

// completing 包装有限任务：fn 正常返回时取消整个组，
// 让信号监听等陪跑服务跟着退出而不是把 Wait 挂住。
func (g *Group) completing(fn func(ctx context.Context) error) func(ctx context.Context) error {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			g.cancel(nil)
		}
		return err
	}
}
