package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/logpipe/pkg/xcompress"
	"github.com/omeyang/logpipe/pkg/xconf"
	"github.com/omeyang/logpipe/pkg/xrotate"
)

// Settings 是一次运行的完整配置，由默认值、配置文件和命令行
// 选项按优先级递增合并而成，构建后不再修改。
type Settings struct {
	MaxCount   int    `koanf:"maxcount"`
	Dir        string `koanf:"dir"`
	Owner      string `koanf:"owner"`
	Group      string `koanf:"group"`
	Mode       string `koanf:"mode"`
	Compress   string `koanf:"compress"`
	NoCompress bool   `koanf:"nocompress"`
	Verbose    bool   `koanf:"verbose"`
}

// defaultSettings 返回出厂默认配置。
func defaultSettings() Settings {
	return Settings{
		MaxCount: xrotate.DefaultMaxCount,
		Compress: xcompress.DefaultCommand,
	}
}

// loadSettings 合并默认值、配置文件与命令行选项。
// 只有显式传入的命令行选项才覆盖配置文件中的值。
func loadSettings(cmd *cli.Command) (Settings, *xconf.File, error) {
	s := defaultSettings()

	var cfg *xconf.File
	if path := cmd.String("config"); path != "" {
		f, err := xconf.New(path)
		if err != nil {
			return s, nil, err
		}
		if err := f.Unmarshal("", &s); err != nil {
			return s, nil, err
		}
		cfg = f
	}

	if cmd.IsSet("count") {
		s.MaxCount = cmd.Int("count")
	}
	if cmd.IsSet("dir") {
		s.Dir = cmd.String("dir")
	}
	if cmd.IsSet("user") {
		s.Owner = cmd.String("user")
	}
	if cmd.IsSet("group") {
		s.Group = cmd.String("group")
	}
	if cmd.IsSet("mode") {
		s.Mode = cmd.String("mode")
	}
	if cmd.IsSet("compress") {
		s.Compress = cmd.String("compress")
	}
	if cmd.IsSet("no-compress") {
		s.NoCompress = cmd.Bool("no-compress")
	}
	if cmd.IsSet("verbose") {
		s.Verbose = cmd.Bool("verbose")
	}

	return s, cfg, nil
}

// logPath 返回实际的日志路径：显式目录选项优先于路径自带的目录部分。
func (s Settings) logPath(arg string) string {
	if s.Dir == "" {
		return arg
	}
	return filepath.Join(s.Dir, filepath.Base(arg))
}

// parseMode 解析八进制权限字符串，如 "640"、"0600"。
func parseMode(mode string) (fs.FileMode, error) {
	n, err := strconv.ParseUint(mode, 8, 32)
	if err != nil || n > 0o7777 {
		return 0, fmt.Errorf("invalid file mode %q", mode)
	}
	return fs.FileMode(n), nil
}
