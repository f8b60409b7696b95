package main

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultSettings 测试出厂默认值
func TestDefaultSettings(t *testing.T) {
	s := defaultSettings()
	assert.Equal(t, 10, s.MaxCount)
	assert.Equal(t, "gzip", s.Compress)
	assert.False(t, s.NoCompress)
	assert.Empty(t, s.Dir)
}

// TestSettingsLogPath 测试显式目录选项覆盖路径自带的目录
func TestSettingsLogPath(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		arg  string
		want string
	}{
		{name: "无目录选项", dir: "", arg: "/var/log/app.log", want: "/var/log/app.log"},
		{name: "目录选项覆盖", dir: "/data/logs", arg: "/var/log/app.log", want: filepath.Join("/data/logs", "app.log")},
		{name: "裸文件名", dir: "/data/logs", arg: "app.log", want: filepath.Join("/data/logs", "app.log")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{Dir: tt.dir}
			assert.Equal(t, tt.want, s.logPath(tt.arg))
		})
	}
}

// TestParseMode 测试八进制权限解析
func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		want    fs.FileMode
		wantErr bool
	}{
		{name: "常规权限", mode: "640", want: 0o640},
		{name: "带前导零", mode: "0600", want: 0o600},
		{name: "带特殊位", mode: "4755", want: 0o4755},
		{name: "非八进制", mode: "9", wantErr: true},
		{name: "非数字", mode: "rw-r--r--", wantErr: true},
		{name: "空字符串", mode: "", wantErr: true},
		{name: "超出范围", mode: "77777", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(tt.mode)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
