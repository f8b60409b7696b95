package xfile

import (
	"strings"
	"testing"
)

// FuzzSanitizePath 模糊测试路径净化。
//
// 测试目标：
//   - 任意输入不会导致 panic
//   - 成功返回的路径不包含空字节、".." 路径段，也不以分隔符结尾
func FuzzSanitizePath(f *testing.F) {
	f.Add("/var/log/app.log")
	f.Add("")
	f.Add(".")
	f.Add("..")
	f.Add("../../../etc/passwd")
	f.Add("app..2024.log")
	f.Add("/var/log/")
	f.Add("logs\\app.log")
	f.Add("a\x00b")
	f.Add(strings.Repeat("x/", 200) + "f.log")

	f.Fuzz(func(t *testing.T, filename string) {
		got, err := SanitizePath(filename)
		if err != nil {
			// 格式错误是可接受的
			return
		}
		if strings.ContainsRune(got, 0) {
			t.Errorf("sanitized path %q contains null byte", got)
		}
		if hasDotDotSegment(got) {
			t.Errorf("sanitized path %q contains dot-dot segment", got)
		}
		if strings.HasSuffix(got, "/") || strings.HasSuffix(got, "\\") {
			t.Errorf("sanitized path %q ends with separator", got)
		}
	})
}
