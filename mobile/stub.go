//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 移动端入口在 mobile.go 中，仅在使用 -tags mobile 时编译；
// 普通构建只编译此文件，使 ./... 能正常构建和测试。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
