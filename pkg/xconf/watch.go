package xconf

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOption 监视器配置选项。
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

func defaultWatchOptions() *watchOptions {
	return &watchOptions{
		debounce: 100 * time.Millisecond,
	}
}

// WithDebounce 设置防抖时间，指定时间内的多次变更只触发一次重载。
// 默认 100ms。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watch 阻塞监视配置文件，直到 ctx 被取消。
//
// 文件变更经防抖后自动 Reload，随后调用 onChange 通知结果；
// Reload 失败时旧配置保持生效，错误通过 onChange 传出。
// 监视的是文件所在目录而非文件本身，编辑器的原子写入
// （写临时文件后 rename）也能被捕获。
//
// ctx 取消返回 nil，因此可以直接作为 xrun 组里的服务函数：
//
//	g.Go(func(ctx context.Context) error {
//	    return cfg.Watch(ctx, onChange)
//	})
func (f *File) Watch(ctx context.Context, onChange func(err error), opts ...WatchOption) error {
	options := defaultWatchOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("xconf: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("xconf: watch directory %s: %w", dir, err)
	}

	filename := filepath.Base(f.path)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// Write 直接修改，Create/Rename 覆盖编辑器的原子写入模式
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(options.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				err := f.Reload()
				if onChange != nil {
					onChange(err)
				}
			})

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onChange != nil {
				onChange(fmt.Errorf("xconf: watch error: %w", werr))
			}
		}
	}
}
