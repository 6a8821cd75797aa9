//go:build !mobile

// Package mobile 在普通构建中只保留占位函数
// ebitenmobile 入口见 mobile.go（-tags mobile）
package mobile

// Dummy 确保包在非移动端构建时也能被引用
func Dummy() {}
