//go:build unix

package xcompress

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript 创建可执行的测试脚本并返回其路径。
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o700))
	return path
}

// TestToolCompress 测试压缩工具收到文件路径作为最后一个参数
func TestToolCompress(t *testing.T) {
	script := writeScript(t, "fakegzip", `mv "$1" "$1.gz"`)

	dir := t.TempDir()
	target := filepath.Join(dir, "app.log.0")
	require.NoError(t, os.WriteFile(target, []byte("line\n"), 0o600))

	tool := &Tool{path: script}
	require.NoError(t, tool.Compress(context.Background(), target))

	assert.NoFileExists(t, target)
	assert.FileExists(t, target+".gz")
}

// TestToolCompressWithArgs 测试固定参数出现在文件路径之前
func TestToolCompressWithArgs(t *testing.T) {
	script := writeScript(t, "argdump", `printf '%s\n' "$@" > "$OUT"`)

	out := filepath.Join(t.TempDir(), "argv")
	t.Setenv("OUT", out)

	tool := &Tool{path: script, args: []string{"-q", "--rm"}}
	require.NoError(t, tool.Compress(context.Background(), "/tmp/app.log.0"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-q\n--rm\n/tmp/app.log.0\n", string(data))
}

// TestToolCompressFailure 测试失败时错误中携带工具的标准错误输出
func TestToolCompressFailure(t *testing.T) {
	script := writeScript(t, "failgzip", `echo "no space left" >&2; exit 3`)

	tool := &Tool{path: script}
	err := tool.Compress(context.Background(), "/tmp/app.log.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left")
	assert.Contains(t, err.Error(), "exit status 3")
}

// TestToolCompressContextCanceled 测试上下文取消终止子进程
func TestToolCompressContextCanceled(t *testing.T) {
	script := writeScript(t, "slowgzip", `sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tool := &Tool{path: script}
	err := tool.Compress(ctx, "/tmp/app.log.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
