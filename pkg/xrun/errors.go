package xrun

import (
	"errors"
	"fmt"
	"os"
)

// ErrSignal 表示因收到系统信号而终止。
// 使用 errors.Is(err, ErrSignal) 判断是否为信号退出。
var ErrSignal = errors.New("received signal")

// ErrNilFunc 表示向 Group 注册了 nil 服务函数。
var ErrNilFunc = errors.New("xrun: nil service function")

// SignalError 包含触发终止的具体信号信息。
//
// Run/RunWithOptions 在收到系统信号时返回此错误。
// 使用 errors.As 可以取出具体信号值：
//
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//	    fmt.Printf("terminated by %v\n", sigErr.Signal)
//	}
type SignalError struct {
	Signal os.Signal
}

// Error 实现 error 接口。
func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Is 支持 errors.Is(err, ErrSignal) 判断。
func (e *SignalError) Is(target error) bool {
	return target == ErrSignal
}

// Unwrap 返回底层错误。
func (e *SignalError) Unwrap() error {
	return ErrSignal
}
