package xrotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseGeneration 测试代次文件名解析
func TestParseGeneration(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		file       string
		wantOK     bool
		wantIndex  int
		wantSuffix string
	}{
		{name: "无后缀代次", base: "app.log", file: "app.log.0", wantOK: true, wantIndex: 0, wantSuffix: ""},
		{name: "gzip 后缀", base: "app.log", file: "app.log.3.gz", wantOK: true, wantIndex: 3, wantSuffix: ".gz"},
		{name: "xz 后缀", base: "app.log", file: "app.log.12.xz", wantOK: true, wantIndex: 12, wantSuffix: ".xz"},
		{name: "多位数索引", base: "app.log", file: "app.log.10.gz", wantOK: true, wantIndex: 10, wantSuffix: ".gz"},
		{name: "活动日志本身", base: "app.log", file: "app.log", wantOK: false},
		{name: "点后无数字", base: "app.log", file: "app.log.gz", wantOK: false},
		{name: "仅多一个点", base: "app.log", file: "app.log.", wantOK: false},
		{name: "不同前缀", base: "app.log", file: "other.log.0", wantOK: false},
		{name: "前缀是子串", base: "app.log", file: "app.log2.0", wantOK: false},
		{name: "索引溢出", base: "app.log", file: "app.log.99999999999999999999.gz", wantOK: false},
		{name: "基名含数字", base: "app2.log", file: "app2.log.7", wantOK: true, wantIndex: 7, wantSuffix: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := parseGeneration(tt.base, tt.file)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, g.index)
				assert.Equal(t, tt.wantSuffix, g.suffix)
				assert.Equal(t, tt.file, g.name)
			}
		})
	}
}

// TestScanDescendingOrder 测试扫描结果按索引降序
func TestScanDescendingOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"app.log.2.gz", "app.log.0", "app.log.10.gz", "app.log.1"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	r, err := New(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	gens, err := r.scan()
	require.NoError(t, err)

	indices := make([]int, 0, len(gens))
	for _, g := range gens {
		indices = append(indices, g.index)
	}
	assert.Equal(t, []int{10, 2, 1, 0}, indices)
}

// TestScanMissingDirectory 测试目录不存在时返回空列表
func TestScanMissingDirectory(t *testing.T) {
	r, err := New(filepath.Join(t.TempDir(), "nope", "app.log"))
	require.NoError(t, err)

	gens, err := r.scan()
	require.NoError(t, err)
	assert.Empty(t, gens)
}
