// Package xpipe 把输入流逐行复制到日志文件。
//
// 复制以行为单位：每读到一行立即写入并落到文件，不做批量缓冲，
// 进程被杀死时最多丢失未写完的当前行。输入结尾没有换行符时会
// 自动补上，保证日志文件始终以完整行结束。
//
// 打开文件使用追加模式，文件不存在时创建。可选地在打开后设置
// 文件的权限位、属主和属组，设置失败视为致命错误，复制不会开始。
//
// 上下文取消（通常来自信号处理）会停止写入并关闭文件，但无法
// 中断已经阻塞在输入读取上的系统调用，这类阻塞由进程退出收尾。
package xpipe
