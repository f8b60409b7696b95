package xpipe

import (
	"fmt"
	"os/user"
	"strconv"
)

// lookupUser 和 lookupGroup 是 os/user 查找函数的包级变量，支持测试中 mock。
var (
	lookupUser  = user.Lookup
	lookupGroup = user.LookupGroup
)

// resolveUID 把属主字符串解析为数字 UID。
// 先按用户名查找，查不到时尝试按纯数字 UID 解释。
func resolveUID(owner string) (int, error) {
	if u, err := lookupUser(owner); err == nil {
		uid, err := strconv.Atoi(u.Uid)
		if err != nil {
			return -1, fmt.Errorf("%w: %q: non-numeric uid %q", ErrUnknownOwner, owner, u.Uid)
		}
		return uid, nil
	}
	if uid, err := strconv.Atoi(owner); err == nil && uid >= 0 {
		return uid, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownOwner, owner)
}

// resolveGID 把属组字符串解析为数字 GID。
func resolveGID(group string) (int, error) {
	if g, err := lookupGroup(group); err == nil {
		gid, err := strconv.Atoi(g.Gid)
		if err != nil {
			return -1, fmt.Errorf("%w: %q: non-numeric gid %q", ErrUnknownGroup, group, g.Gid)
		}
		return gid, nil
	}
	if gid, err := strconv.Atoi(group); err == nil && gid >= 0 {
		return gid, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
}
