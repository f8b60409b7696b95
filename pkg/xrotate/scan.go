package xrotate

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// generation 描述目录中匹配到的一个历史代次文件。
type generation struct {
	name   string // 目录内的文件名
	index  int    // 代次编号
	suffix string // 编号之后的剩余部分，如 ".gz"，可能为空
}

// parseGeneration 判断 name 是否为 base 的代次文件。
//
// 匹配形式为 "<base>.<数字串><剩余部分>"，其中数字串取最长匹配，
// 因此 "log.10.gz" 解析为索引 10 而不是索引 1。
// 剩余部分（压缩扩展名）原样保留，轮转时跟随文件移动。
func parseGeneration(base, name string) (generation, bool) {
	rest, ok := strings.CutPrefix(name, base+".")
	if !ok || rest == "" {
		return generation{}, false
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return generation{}, false
	}

	index, err := strconv.Atoi(rest[:digits])
	if err != nil {
		// 数字串超出 int 表示范围，不视为代次文件
		return generation{}, false
	}
	return generation{name: name, index: index, suffix: rest[digits:]}, true
}

// scan 扫描日志目录，返回按索引严格降序排列的代次列表。
// 目录不存在时返回空列表。
func (r *Rotator) scan() ([]generation, error) {
	entries, err := r.readDirFn(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("xrotate: scan directory: %w", err)
	}

	var gens []generation
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if g, ok := parseGeneration(r.base, entry.Name()); ok {
			gens = append(gens, g)
		}
	}

	// 降序执行重命名，保证目标位置先被腾空；
	// 索引相同（如 log.0 与 log.0.gz 并存）时按文件名保证确定性。
	sort.Slice(gens, func(i, j int) bool {
		if gens[i].index != gens[j].index {
			return gens[i].index > gens[j].index
		}
		return gens[i].name > gens[j].name
	})
	return gens, nil
}
