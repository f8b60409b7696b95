package xfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestEnsureDirWithPerm(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("递归创建多级目录", func(t *testing.T) {
		file := filepath.Join(tmpDir, "a", "b", "c", "app.log")
		if err := EnsureDirWithPerm(file, 0750); err != nil {
			t.Fatalf("EnsureDirWithPerm: %v", err)
		}
		info, err := os.Stat(filepath.Dir(file))
		if err != nil {
			t.Fatalf("stat created dir: %v", err)
		}
		if !info.IsDir() {
			t.Fatal("created path is not a directory")
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0750 {
			t.Errorf("dir perm = %04o, want 0750", info.Mode().Perm())
		}
	})

	t.Run("目录已存在时为空操作", func(t *testing.T) {
		file := filepath.Join(tmpDir, "exists", "app.log")
		if err := EnsureDirWithPerm(file, 0750); err != nil {
			t.Fatalf("first EnsureDirWithPerm: %v", err)
		}
		if err := EnsureDirWithPerm(file, 0700); err != nil {
			t.Fatalf("second EnsureDirWithPerm: %v", err)
		}
		// 已有目录权限不被修改
		info, err := os.Stat(filepath.Join(tmpDir, "exists"))
		if err != nil {
			t.Fatal(err)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0750 {
			t.Errorf("existing dir perm changed to %04o", info.Mode().Perm())
		}
	})

	t.Run("无目录部分时不创建任何东西", func(t *testing.T) {
		if err := EnsureDirWithPerm("bare.log", 0750); err != nil {
			t.Fatalf("EnsureDirWithPerm: %v", err)
		}
	})

	t.Run("空路径", func(t *testing.T) {
		if err := EnsureDirWithPerm("", 0750); !errors.Is(err, ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})

	t.Run("空字节", func(t *testing.T) {
		if err := EnsureDirWithPerm("a\x00/b.log", 0750); !errors.Is(err, ErrNullByte) {
			t.Errorf("error = %v, want ErrNullByte", err)
		}
	})

	t.Run("缺少所有者执行位", func(t *testing.T) {
		if err := EnsureDirWithPerm("a/b.log", 0640); !errors.Is(err, ErrInvalidPerm) {
			t.Errorf("error = %v, want ErrInvalidPerm", err)
		}
	})
}

func TestEnsureDirDefaultPerm(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "defperm", "app.log")
	if err := EnsureDir(file); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(filepath.Join(tmpDir, "defperm"))
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != DefaultDirPerm {
		t.Errorf("dir perm = %04o, want %04o", info.Mode().Perm(), os.FileMode(DefaultDirPerm))
	}
}
