// Package xconf 加载与监视 YAML/JSON 配置文件。
//
// 配置基于 koanf 实现，按文件扩展名自动识别格式，通过结构体标签
// 反序列化到调用方的配置结构。Reload 并发安全，可在运行中重新
// 加载同一文件。
//
// Watch 基于 fsnotify 监视配置文件所在目录，文件变更经过防抖后
// 自动 Reload 并回调通知。Watch 是阻塞式的，设计为 xrun 组里的
// 一个服务函数，随整组的 context 取消退出。
package xconf
