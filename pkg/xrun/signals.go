package xrun

import (
	"context"
	"os"
	"syscall"
)

// DefaultSignals 返回默认监听的终止信号列表。
//
// 包含 SIGHUP、SIGINT、SIGTERM、SIGQUIT。对日志管道来说 SIGHUP
// 意味着上游终端断开，与其他终止信号同样按正常结束处理。
// 每次调用返回新的切片，调用者可安全修改。
func DefaultSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}

// 设计决策: 测试信号通道的注入点定义在非测试文件中，因为 runGroup
// （生产代码）需要调用 testSigChan。这样测试不必向进程发送真实信号，
// 代价只是一次 context.Value 查找。

// testSigChanKey 用于在测试中通过 context 注入信号通道。
type testSigChanKey struct{}

// testSigChan 从 context 中获取测试信号通道（生产环境返回 nil）。
func testSigChan(ctx context.Context) <-chan os.Signal {
	c, ok := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	if !ok {
		return nil
	}
	return c
}

// withTestSigChan 在 context 中注入测试信号通道。
func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}
