package xpipe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/omeyang/logpipe/pkg/xfile"
)

// Copier 把输入流逐行追加到单个日志文件。
type Copier struct {
	path string
	opts *options

	// 可注入的文件属性调用，便于在无特权的测试环境中验证调用顺序
	chmodFn func(f *os.File, mode fs.FileMode) error
	chownFn func(f *os.File, uid, gid int) error
}

// New 创建写入 path 的复制器。
// path 经过 xfile.SanitizePath 校验，必须是一个合法的文件路径。
func New(path string, opts ...Option) (*Copier, error) {
	clean, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return &Copier{
		path:    clean,
		opts:    o,
		chmodFn: func(f *os.File, mode fs.FileMode) error { return f.Chmod(mode) },
		chownFn: func(f *os.File, uid, gid int) error { return f.Chown(uid, gid) },
	}, nil
}

// Path 返回规范化后的日志文件路径。
func (c *Copier) Path() string {
	return c.path
}

// line 单次读取的结果，data 与 err 不会同时有效。
type line struct {
	data []byte
	err  error
}

// Copy 把 src 的内容逐行复制到日志文件，直到输入结束或上下文取消。
//
// 输入结束（EOF）和上下文取消都返回 nil；读取或写入故障返回错误。
// 文件在所有返回路径上都会关闭。取消只停止写入侧，阻塞中的读取
// 系统调用无法被打断，留给进程退出处理。
func (c *Copier) Copy(ctx context.Context, src io.Reader) (err error) {
	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, c.opts.mode)
	if err != nil {
		return fmt.Errorf("xpipe: open log file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("xpipe: close log file: %w", cerr)
		}
	}()

	if err := c.applyAttrs(f); err != nil {
		return err
	}

	ch := make(chan line, 1)
	go c.produce(ctx, src, ch)

	var lines, bytes int64
	for {
		select {
		case <-ctx.Done():
			c.opts.logger.Info("copy interrupted",
				slog.String("path", c.path),
				slog.Int64("lines", lines),
				slog.Int64("bytes", bytes))
			return nil
		case msg, ok := <-ch:
			if !ok {
				c.opts.logger.Info("copy finished",
					slog.String("path", c.path),
					slog.Int64("lines", lines),
					slog.Int64("bytes", bytes))
				return nil
			}
			if msg.err != nil {
				return fmt.Errorf("xpipe: read input: %w", msg.err)
			}
			n, werr := f.Write(msg.data)
			if werr != nil {
				return fmt.Errorf("xpipe: write log file: %w", werr)
			}
			lines++
			bytes += int64(n)
		}
	}
}

// produce 逐行读取 src 并送入 ch，读完或上下文取消后关闭 ch。
// 结尾缺失的换行符在这里补齐。
func (c *Copier) produce(ctx context.Context, src io.Reader, ch chan<- line) {
	defer close(ch)

	reader := bufio.NewReader(src)
	for {
		data, err := reader.ReadBytes('\n')
		if len(data) > 0 {
			if data[len(data)-1] != '\n' {
				data = append(data, '\n')
			}
			select {
			case ch <- line{data: data}:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				select {
				case ch <- line{err: err}:
				case <-ctx.Done():
				}
			}
			return
		}
	}
}

// applyAttrs 按 权限位、属主、属组 的顺序应用文件属性。
// 任何一步失败都视为致命错误，复制不会开始。
// 每个成功应用的属性都记录一条 Info 日志，供 -v 诊断输出。
func (c *Copier) applyAttrs(f *os.File) error {
	if c.opts.modeSet {
		if err := c.chmodFn(f, c.opts.mode); err != nil {
			return fmt.Errorf("xpipe: chmod %s: %w", c.path, err)
		}
		c.opts.logger.Info("chmod",
			slog.String("path", c.path),
			slog.String("mode", fmt.Sprintf("%#o", c.opts.mode)))
	}
	if c.opts.owner != "" {
		uid, err := resolveUID(c.opts.owner)
		if err != nil {
			return err
		}
		if err := c.chownFn(f, uid, -1); err != nil {
			return fmt.Errorf("xpipe: chown %s to %q: %w", c.path, c.opts.owner, err)
		}
		c.opts.logger.Info("chown",
			slog.String("path", c.path),
			slog.String("owner", c.opts.owner),
			slog.Int("uid", uid))
	}
	if c.opts.group != "" {
		gid, err := resolveGID(c.opts.group)
		if err != nil {
			return err
		}
		if err := c.chownFn(f, -1, gid); err != nil {
			return fmt.Errorf("xpipe: chgrp %s to %q: %w", c.path, c.opts.group, err)
		}
		c.opts.logger.Info("chgrp",
			slog.String("path", c.path),
			slog.String("group", c.opts.group),
			slog.Int("gid", gid))
	}
	return nil
}
