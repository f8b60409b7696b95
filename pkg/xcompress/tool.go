package xcompress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// DefaultCommand 未指定压缩命令时使用的默认工具。
const DefaultCommand = "gzip"

// lookPath 是 exec.LookPath 的包级变量，支持测试中 mock。
var lookPath = exec.LookPath

// Tool 表示一个已解析的外部压缩工具。
// 零值不可用，必须通过 Resolve 创建。
type Tool struct {
	path string   // 可执行文件的绝对路径
	args []string // 固定参数，调用时在末尾追加目标文件路径
}

// Resolve 解析压缩命令字符串并在 PATH 中定位可执行文件。
//
// command 按 shell 引用规则拆分，第一个词是工具名，其余是固定参数。
// 工具找不到时返回包装了 ErrToolNotFound 的错误。
func Resolve(command string) (*Tool, error) {
	words, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("xcompress: parse command %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyCommand, command)
	}

	path, err := lookPath(words[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrToolNotFound, words[0], err)
	}
	return &Tool{path: path, args: words[1:]}, nil
}

// Path 返回工具可执行文件的绝对路径。
func (t *Tool) Path() string {
	return t.path
}

// String 返回可读的命令描述，供日志输出使用。
func (t *Tool) String() string {
	if len(t.args) == 0 {
		return t.path
	}
	return t.path + " " + strings.Join(t.args, " ")
}

// Compress 对 path 指向的文件执行压缩工具。
//
// 文件路径作为最后一个参数传入，工具的标准错误会在失败时
// 附加到返回的错误中。上下文取消会终止子进程。
func (t *Tool) Compress(ctx context.Context, path string) error {
	argv := make([]string, 0, len(t.args)+1)
	argv = append(argv, t.args...)
	argv = append(argv, path)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, argv...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("xcompress: run %s: %w: %s", t.path, err, msg)
		}
		if ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
			return fmt.Errorf("xcompress: run %s: %w (%v)", t.path, ctx.Err(), err)
		}
		return fmt.Errorf("xcompress: run %s: %w", t.path, err)
	}
	return nil
}
