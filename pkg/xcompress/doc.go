// Package xcompress 封装外部压缩工具的解析与调用。
//
// 压缩不在进程内实现，而是把代次文件路径追加为最后一个参数后
// 执行外部命令（gzip、xz、zstd 等），由工具自行决定输出文件名
// 并清理未压缩的原文件。命令字符串支持 shell 风格的引用与转义，
// 如 "zstd -q --rm"。
//
// Resolve 在启动阶段通过 PATH 查找解析出可执行文件的绝对路径，
// 解析失败在运行前即可暴露，而不是等到第一次轮转时才发现。
package xcompress
