// Package storage 提供按 group/key 寻址的字符串配置存储
//
// 插件把每个区域的标记序列化后存放在 group "brushMarkers"、key "region_<id>" 下。
// 后端可以是 gdata（默认，跨平台游戏数据目录）、SQLite 或纯内存。
package storage

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/config"
)

// ErrUnknownBackend 未知的存储后端
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store 配置存储接口
type Store interface {
	// Get 读取值，key 不存在时返回空字符串和 nil
	Get(group, key string) (string, error)
	// Set 写入值（整体替换）
	Set(group, key, value string) error
	// Unset 删除 key，key 不存在时不报错
	Unset(group, key string) error
	// Keys 列出 group 下所有 key
	Keys(group string) ([]string, error)
	// Close 释放底层资源
	Close() error
}

// Open 根据配置打开存储后端
//
// 参数：
//   - cfg: 存储配置
//   - logger: 日志
//
// 返回：
//   - Store: 存储实例
//   - error: 后端未知或打开失败时返回错误
func Open(cfg config.StorageConfig, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "Storage").Str("backend", cfg.Backend).Logger()

	switch cfg.Backend {
	case config.BackendGdata:
		return NewGdataStore(OpenGdata(cfg.AppName, logger), logger), nil

	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		logger.Info().Str("path", cfg.Path).Msg("sqlite storage opened")
		return s, nil

	case config.BackendMemory:
		return NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// OpenGdata 打开 gdata 管理器
//
// 打开失败时记录警告并返回 nil，调用方进入降级模式（只在内存中保存，程序仍可运行）。
//
// 参数：
//   - appName: gdata 应用名，决定数据目录
//   - logger: 日志
func OpenGdata(appName string, logger zerolog.Logger) *gdata.Manager {
	if err := EnsureStorageDir(appName); err != nil {
		logger.Warn().Err(err).Msg("Failed to prepare storage directory")
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn().Err(err).Msg("gdata unavailable, falling back to in-memory storage")
		return nil
	}
	logger.Info().Str("app", appName).Str("dir", StoragePath(appName)).Msg("gdata storage opened")
	return manager
}
