// Package xrotate 实现按编号代次（generation）的日志轮转。
//
// 与按大小触发的轮转器不同，本包的轮转发生在每次运行开始之前：
// 调用 Rotate 为即将写入的活动日志腾出位置，把既有的历史代次整体上移一位。
// 轮转后的文件布局为：
//
//	<name>             当前活动日志（无后缀）
//	<name>.0[.ext]     最近一次轮转出的代次
//	<name>.1[.ext]     次新代次
//	...
//	<name>.<N-2>[.ext] 最老的保留代次（N 为最大代次数，含活动日志）
//
// .ext 是压缩工具自行追加的扩展名（如 .gz、.xz），也可能为空（未压缩）。
// 代次匹配按 "<base>.<数字串><非数字开头的剩余部分>" 锚定，
// 因此轮转索引 1 时不会误伤 <name>.10.gz。
//
// # 已知限制
//
//   - 不提供跨进程的并发轮转协调；调用方负责避免两个实例同时操作同一日志名。
//   - 压缩工具的退出状态不会影响轮转结果：压缩失败时索引 0 保留为未压缩
//     文件，下一轮转周期仍按前缀将其视为正常代次。
package xrotate
