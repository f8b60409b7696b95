package xrotate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/omeyang/logpipe/pkg/xfile"
)

// StepKind 轮转步骤的类型。
type StepKind int

// 轮转步骤类型枚举
const (
	StepRemove   StepKind = iota // 删除超出保留数量的代次
	StepRename                   // 代次整体上移一位
	StepCompress                 // 压缩新产生的索引 0 代次
)

// Step 描述一次轮转中的单个文件系统动作。
type Step struct {
	Kind   StepKind
	Path   string // 操作对象
	Target string // 重命名目标，仅 StepRename 使用
}

// String 返回步骤的可读描述，供试运行模式和日志输出使用。
func (s Step) String() string {
	switch s.Kind {
	case StepRemove:
		return "remove " + s.Path
	case StepRename:
		return "rename " + s.Path + " -> " + s.Target
	case StepCompress:
		return "compress " + s.Path
	default:
		return fmt.Sprintf("unknown step %d on %s", int(s.Kind), s.Path)
	}
}

// Rotator 对单个日志名执行基于编号代次的轮转。
//
// 同一个 Rotator 可以多次调用 Rotate，每次调用对应一次新的运行周期。
// Rotator 不持有任何文件句柄，并发安全性由调用方保证。
type Rotator struct {
	path string // 规范化后的活动日志路径
	dir  string
	base string

	maxCount   int
	compressor Compressor
	logger     *slog.Logger
	dirPerm    fs.FileMode

	// 可注入的文件系统调用，便于测试注入故障
	renameFn  func(oldpath, newpath string) error
	removeFn  func(name string) error
	readDirFn func(name string) ([]os.DirEntry, error)
	statFn    func(name string) (os.FileInfo, error)
}

// New 创建针对 path 的轮转器。
// path 经过 xfile.SanitizePath 校验，必须是一个合法的文件路径。
func New(path string, opts ...Option) (*Rotator, error) {
	clean, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.maxCount > maxCountLimit {
		return nil, fmt.Errorf("%w: %d > %d", ErrMaxCountTooLarge, o.maxCount, maxCountLimit)
	}
	if o.maxCount < 1 {
		o.maxCount = 1
	}

	return &Rotator{
		path:       clean,
		dir:        filepath.Dir(clean),
		base:       filepath.Base(clean),
		maxCount:   o.maxCount,
		compressor: o.compressor,
		logger:     o.logger,
		dirPerm:    o.dirPerm,
		renameFn:   os.Rename,
		removeFn:   os.Remove,
		readDirFn:  os.ReadDir,
		statFn:     os.Stat,
	}, nil
}

// Path 返回规范化后的活动日志路径。
func (r *Rotator) Path() string {
	return r.path
}

// Plan 扫描当前目录状态，返回一次轮转将要执行的步骤序列。
// Plan 不修改文件系统，可用于试运行模式。
func (r *Rotator) Plan() ([]Step, error) {
	gens, err := r.scan()
	if err != nil {
		return nil, err
	}

	var steps []Step
	// gens 已按索引降序排列，先清理再上移，目标位置总是先被腾空。
	// 阈值取 maxCount-2：轮转完成后最老代次的索引恰为 maxCount-2，
	// 同时把历史运行用更大 maxCount 留下的高位代次一并清掉。
	for _, g := range gens {
		src := filepath.Join(r.dir, g.name)
		if g.index >= r.maxCount-2 {
			steps = append(steps, Step{Kind: StepRemove, Path: src})
			continue
		}
		target := filepath.Join(r.dir, fmt.Sprintf("%s.%d%s", r.base, g.index+1, g.suffix))
		steps = append(steps, Step{Kind: StepRename, Path: src, Target: target})
	}

	if _, err := r.statFn(r.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return steps, nil
		}
		return nil, fmt.Errorf("xrotate: stat active log: %w", err)
	}
	if r.maxCount < 2 {
		// 不保留历史，旧的活动日志直接删除
		return append(steps, Step{Kind: StepRemove, Path: r.path}), nil
	}
	zero := r.path + ".0"
	steps = append(steps, Step{Kind: StepRename, Path: r.path, Target: zero})
	if r.compressor != nil {
		steps = append(steps, Step{Kind: StepCompress, Path: zero})
	}
	return steps, nil
}

// Rotate 执行一次完整轮转：必要时创建日志目录，随后按 Plan 给出的
// 顺序删除、上移既有代次，并把旧的活动日志移动到索引 0。
//
// 轮转过程中消失的文件视为已被外部清理，不构成错误；
// 压缩失败只记录日志，不影响返回值。
func (r *Rotator) Rotate(ctx context.Context) error {
	if err := xfile.EnsureDirWithPerm(r.path, r.dirPerm); err != nil {
		return fmt.Errorf("xrotate: ensure log directory: %w", err)
	}

	steps, err := r.Plan()
	if err != nil {
		return err
	}
	for _, step := range steps {
		if err := r.apply(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// apply 执行单个轮转步骤。
func (r *Rotator) apply(ctx context.Context, step Step) error {
	switch step.Kind {
	case StepRemove:
		if err := r.removeFn(step.Path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("xrotate: remove generation: %w", err)
		}
		r.logger.Info("removed expired generation", slog.String("path", step.Path))
	case StepRename:
		if err := r.renameFn(step.Path, step.Target); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("xrotate: shift generation: %w", err)
		}
		r.logger.Info("shifted generation",
			slog.String("from", step.Path),
			slog.String("to", step.Target))
	case StepCompress:
		// 设计决策: 压缩只是锦上添花，工具失败时保留未压缩的索引 0
		// 代次继续参与后续轮转，不让一次压缩故障中断整个运行。
		if err := r.compressor.Compress(ctx, step.Path); err != nil {
			r.logger.Warn("compression failed, keeping generation uncompressed",
				slog.String("path", step.Path),
				slog.Any("error", err))
			return nil
		}
		r.logger.Info("compressed generation", slog.String("path", step.Path))
	}
	return nil
}
