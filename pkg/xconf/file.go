package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File 表示一个已加载的配置文件。
// Unmarshal 和 Reload 并发安全。
type File struct {
	path   string
	format Format
	opts   *Options

	mu sync.RWMutex
	k  *koanf.Koanf
}

// New 从文件路径加载配置。
// 格式按扩展名识别：.yaml/.yml 为 YAML，.json 为 JSON。
func New(path string, opts ...Option) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	f := &File{
		path:   path,
		format: format,
		opts:   options,
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Unmarshal 将指定路径的配置反序列化到目标结构体。
// path 为空字符串时反序列化整个配置，字段映射使用 koanf 标签。
func (f *File) Unmarshal(path string, target any) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{
		Tag: f.opts.Tag,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

// Reload 重新读取并解析配置文件。
// 解析失败时保留旧配置，调用方可以继续使用变更前的值。
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	k := koanf.New(f.opts.Delim)
	if len(data) > 0 {
		if err := loadData(k, data, f.format); err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.k = k
	f.mu.Unlock()
	return nil
}

// Path 返回配置文件路径。
func (f *File) Path() string {
	return f.path
}

// Format 返回配置格式。
func (f *File) Format() Format {
	return f.format
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// loadData 解析数据并载入 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
