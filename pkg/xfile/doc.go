// Package xfile 提供日志路径的格式校验与目录创建工具。
//
// SanitizePath 对用户传入的日志路径做格式净化（空路径、空字节、相对路径
// 穿越、显式目录路径），EnsureDirWithPerm 在轮转开始前递归创建日志目录。
// 本包只做路径层面的工作，不打开文件，也不提供沙箱隔离语义。
package xfile
