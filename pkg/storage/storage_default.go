//go:build !android

package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnsureStorageDir 确保存储目录存在（非 Android 平台的空实现）
// gdata 在桌面平台上会自动创建存储目录
func EnsureStorageDir(appName string) error {
	return nil
}

// StoragePath 返回 gdata 的数据目录（用于日志和标记工具的输出）
// 仅 Linux 下能确定路径，其他平台返回空字符串
func StoragePath(appName string) string {
	if runtime.GOOS != "linux" {
		return ""
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}
