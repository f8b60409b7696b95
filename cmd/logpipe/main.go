// logpipe 把标准输入逐行写入日志文件，并在每次启动前轮转历史代次。
//
// 用法:
//
//	<命令> | logpipe [选项] <日志路径>
//
// 选项:
//
//	-c <count>   最大代次数（含活动日志），默认 10
//	-d <dir>     日志目录，覆盖日志路径中的目录部分
//	-u <user>    日志文件属主（用户名或 UID）
//	-g <group>   日志文件属组（组名或 GID）
//	-m <mode>    日志文件权限（八进制，如 640）
//	-z <tool>    外部压缩命令，默认 gzip；启动时解析失败则直接退出
//	-Z           禁用压缩
//	-v           向标准输出打印每个轮转和属性动作
//	--config     YAML/JSON 配置文件，命令行选项优先于配置文件
//	--dry-run    只打印轮转计划，不改动任何文件
//	--version    打印版本信息
//	-h           打印用法说明
//
// 路径说明:
//
//	日志路径经过安全校验，不接受包含 ".." 上溯段的路径
//	（如 ../logs/app.log）；需要写到上级目录时请使用绝对路径。
//
// 退出码:
//
//	0: 输入流正常结束，或收到终止信号
//	1: 参数错误、压缩工具不可用、轮转或写入故障
//
// 示例:
//
//	myserver 2>&1 | logpipe -c 5 /var/log/myserver/out.log
//	myserver | logpipe -z "zstd -q --rm" -m 640 -u syslog app.log
//	logpipe --dry-run -c 3 app.log </dev/null
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/omeyang/logpipe/pkg/xrun"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// run 执行 CLI 并把错误映射到文档约定的退出码。
func run(args []string) int {
	app := newApp()

	if err := app.Run(context.Background(), args); err != nil {
		// 信号终止对日志管道是正常结束，上游进程退出时常见
		if errors.Is(err, xrun.ErrSignal) {
			return 0
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			// 用法说明已随错误输出，此处只补错误本身
			fmt.Fprintln(os.Stderr, "logpipe:", usageErr.msg)
			return 1
		}
		fmt.Fprintln(os.Stderr, "logpipe:", err)
		return 1
	}
	return 0
}
