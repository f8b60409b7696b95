package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// usageError 表示应伴随用法说明报告的参数类错误。
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// newApp 创建 CLI 应用。
func newApp() *cli.Command {
	return &cli.Command{
		Name:      "logpipe",
		Usage:     "把标准输入逐行写入日志文件，启动前轮转历史代次",
		ArgsUsage: "<日志路径>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "最大代次数（含活动日志）",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "日志目录，覆盖日志路径中的目录部分",
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "日志文件属主（用户名或 UID）",
			},
			&cli.StringFlag{
				Name:    "group",
				Aliases: []string{"g"},
				Usage:   "日志文件属组（组名或 GID）",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "日志文件权限（八进制）",
			},
			&cli.StringFlag{
				Name:    "compress",
				Aliases: []string{"z"},
				Usage:   "外部压缩命令",
				Value:   "gzip",
			},
			&cli.BoolFlag{
				Name:    "no-compress",
				Aliases: []string{"Z"},
				Usage:   "禁用压缩",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "向标准输出打印每个轮转和属性动作",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML/JSON 配置文件路径，命令行选项优先",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "只打印轮转计划，不改动任何文件",
			},
			&cli.BoolFlag{
				Name:  "version",
				Usage: "打印版本信息",
			},
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		// flag 解析错误（未知选项等）同样走用法说明加退出码 1 的路径
		OnUsageError: func(_ context.Context, cmd *cli.Command, err error, _ bool) error {
			_ = cli.ShowAppHelp(cmd)
			return &usageError{msg: err.Error()}
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("version") {
				fmt.Fprintf(cmd.Writer, "logpipe %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
				return nil
			}
			if cmd.Args().Len() != 1 {
				_ = cli.ShowAppHelp(cmd)
				if cmd.Args().Len() == 0 {
					return &usageError{msg: "missing log path argument"}
				}
				return &usageError{msg: fmt.Sprintf("expected exactly one log path, got %d arguments", cmd.Args().Len())}
			}

			settings, cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			err = runSession(ctx, cmd, settings, cfg)
			var usageErr *usageError
			if errors.As(err, &usageErr) {
				_ = cli.ShowAppHelp(cmd)
			}
			return err
		},
	}
}
