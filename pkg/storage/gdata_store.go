package storage

import (
	"fmt"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
)

// GdataStore 基于 gdata 的存储
//
// group 映射为 gdata object，key 映射为 object property。
// gdataManager 为 nil 时进入降级模式，数据只保存在内存中。
type GdataStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	fallback     *MemoryStore
	logger       zerolog.Logger
}

// NewGdataStore 创建 gdata 存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//   - logger: 日志
func NewGdataStore(gdataManager *gdata.Manager, logger zerolog.Logger) *GdataStore {
	return &GdataStore{
		gdataManager: gdataManager,
		fallback:     NewMemoryStore(),
		logger:       logger,
	}
}

// Degraded 是否处于降级模式
func (s *GdataStore) Degraded() bool {
	return s.gdataManager == nil
}

// Get 读取值
func (s *GdataStore) Get(group, key string) (string, error) {
	if s.gdataManager == nil {
		return s.fallback.Get(group, key)
	}

	if !s.gdataManager.ObjectPropExists(group, key) {
		return "", nil
	}

	data, err := s.gdataManager.LoadObjectProp(group, key)
	if err != nil {
		return "", fmt.Errorf("failed to load %s/%s: %w", group, key, err)
	}
	return string(data), nil
}

// Set 写入值
func (s *GdataStore) Set(group, key, value string) error {
	if s.gdataManager == nil {
		return s.fallback.Set(group, key, value)
	}

	if err := s.gdataManager.SaveObjectProp(group, key, []byte(value)); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", group, key, err)
	}
	s.logger.Debug().Str("group", group).Str("key", key).Int("bytes", len(value)).Msg("Saved")
	return nil
}

// Unset 删除 key
func (s *GdataStore) Unset(group, key string) error {
	if s.gdataManager == nil {
		return s.fallback.Unset(group, key)
	}

	if !s.gdataManager.ObjectPropExists(group, key) {
		return nil
	}
	if err := s.gdataManager.DeleteObjectProp(group, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", group, key, err)
	}
	s.logger.Debug().Str("group", group).Str("key", key).Msg("Unset")
	return nil
}

// Keys 列出 group 下所有 key
func (s *GdataStore) Keys(group string) ([]string, error) {
	if s.gdataManager == nil {
		return s.fallback.Keys(group)
	}

	if !s.gdataManager.ObjectExists(group) {
		return nil, nil
	}
	keys, err := s.gdataManager.ListObjectProps(group)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", group, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close gdata 无需关闭
func (s *GdataStore) Close() error { return nil }
