// Package xrun 基于 errgroup 和 context 协调复制会话与信号处理的生命周期。
//
// Run 把若干服务函数和一个信号监听器放进同一个组：任一服务出错
// 或收到终止信号时，组内所有服务通过 context 取消协调退出。
// 信号退出通过 *SignalError 传递，调用方用 errors.Is(err, ErrSignal)
// 区分"被信号终止"和真正的故障，前者对日志管道来说是正常结束。
//
// 使用方式：
//
//	err := xrun.Run(ctx, func(ctx context.Context) error {
//	    return copier.Copy(ctx, os.Stdin)
//	})
//	if errors.Is(err, xrun.ErrSignal) {
//	    return nil // 信号终止按正常退出处理
//	}
package xrun
