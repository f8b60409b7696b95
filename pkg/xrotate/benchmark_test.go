package xrotate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParseGeneration 基准测试文件名解析
func BenchmarkParseGeneration(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		parseGeneration("app.log", "app.log.10.gz")
	}
}

// BenchmarkRotate 基准测试满载目录下的一次完整轮转
func BenchmarkRotate(b *testing.B) {
	dir := b.TempDir()
	active := filepath.Join(dir, "app.log")

	r, err := New(active, WithMaxCount(10))
	if err != nil {
		b.Fatal(err)
	}

	// 预热到稳定布局
	for i := 0; i < 10; i++ {
		if err := os.WriteFile(active, []byte("line\n"), 0o600); err != nil {
			b.Fatal(err)
		}
		if err := r.Rotate(context.Background()); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := os.WriteFile(active, []byte("line\n"), 0o600); err != nil {
			b.Fatal(err)
		}
		if err := r.Rotate(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
