package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/logpipe/pkg/xcompress"
	"github.com/omeyang/logpipe/pkg/xconf"
	"github.com/omeyang/logpipe/pkg/xpipe"
	"github.com/omeyang/logpipe/pkg/xrotate"
	"github.com/omeyang/logpipe/pkg/xrun"
)

// newLogger 创建诊断日志记录器。
// 诊断输出走标准输出，日志内容本身永远不经过这里；
// 返回的 LevelVar 供配置热加载调整详细程度。
func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	if verbose {
		level.Set(slog.LevelInfo)
	} else {
		level.Set(slog.LevelError)
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("run", uuid.NewString()))
	return logger, level
}

// runSession 执行一次完整运行：解析压缩工具、轮转历史代次，
// 然后在信号监护下复制标准输入到日志文件。
func runSession(ctx context.Context, cmd *cli.Command, s Settings, cfg *xconf.File) error {
	logger, level := newLogger(s.Verbose)
	path := s.logPath(cmd.Args().First())

	rotOpts := []xrotate.Option{
		xrotate.WithMaxCount(s.MaxCount),
		xrotate.WithLogger(logger),
	}
	if !s.NoCompress {
		// 压缩工具在任何文件改动之前解析，不可用时立即退出
		tool, err := xcompress.Resolve(s.Compress)
		if err != nil {
			return &usageError{msg: err.Error()}
		}
		rotOpts = append(rotOpts, xrotate.WithCompressor(tool))
	}

	rotator, err := xrotate.New(path, rotOpts...)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		return printPlan(cmd, rotator)
	}

	pipeOpts := []xpipe.Option{xpipe.WithLogger(logger)}
	if s.Mode != "" {
		mode, err := parseMode(s.Mode)
		if err != nil {
			return &usageError{msg: err.Error()}
		}
		pipeOpts = append(pipeOpts, xpipe.WithFileMode(mode))
	}
	if s.Owner != "" {
		pipeOpts = append(pipeOpts, xpipe.WithOwner(s.Owner))
	}
	if s.Group != "" {
		pipeOpts = append(pipeOpts, xpipe.WithGroup(s.Group))
	}
	copier, err := xpipe.New(rotator.Path(), pipeOpts...)
	if err != nil {
		return err
	}

	if err := rotator.Rotate(ctx); err != nil {
		return err
	}

	services := []func(context.Context) error{
		func(ctx context.Context) error {
			return copier.Copy(ctx, cmd.Reader)
		},
	}
	if cfg != nil {
		services = append(services, watchSettings(cfg, logger, level, cmd.IsSet("verbose")))
	}

	return xrun.RunWithOptions(ctx, []xrun.Option{xrun.WithLogger(logger)}, services...)
}

// printPlan 输出试运行模式下的轮转计划。
func printPlan(cmd *cli.Command, rotator *xrotate.Rotator) error {
	steps, err := rotator.Plan()
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		fmt.Fprintln(cmd.Writer, "nothing to rotate")
		return nil
	}
	for _, step := range steps {
		fmt.Fprintln(cmd.Writer, step)
	}
	return nil
}

// watchSettings 返回配置热加载服务：复制进行中允许调整诊断详细程度。
// verboseLocked 表示 -v 来自命令行，此时配置文件的 verbose 不生效。
func watchSettings(cfg *xconf.File, logger *slog.Logger, level *slog.LevelVar, verboseLocked bool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return cfg.Watch(ctx, func(err error) {
			if err != nil {
				logger.Error("config reload failed", slog.Any("error", err))
				return
			}
			s := defaultSettings()
			if err := cfg.Unmarshal("", &s); err != nil {
				logger.Error("config reload failed", slog.Any("error", err))
				return
			}
			if !verboseLocked {
				if s.Verbose {
					level.Set(slog.LevelInfo)
				} else {
					level.Set(slog.LevelError)
				}
			}
			logger.Info("config reloaded", slog.String("path", cfg.Path()))
		})
	}
}
