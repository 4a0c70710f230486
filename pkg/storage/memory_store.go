package storage

import "sort"

// MemoryStore 纯内存存储，用于测试和无需持久化的场景
type MemoryStore struct {
	groups map[string]map[string]string
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{groups: make(map[string]map[string]string)}
}

// Get 读取值
func (s *MemoryStore) Get(group, key string) (string, error) {
	return s.groups[group][key], nil
}

// Set 写入值
func (s *MemoryStore) Set(group, key, value string) error {
	g, ok := s.groups[group]
	if !ok {
		g = make(map[string]string)
		s.groups[group] = g
	}
	g[key] = value
	return nil
}

// Unset 删除 key
func (s *MemoryStore) Unset(group, key string) error {
	delete(s.groups[group], key)
	return nil
}

// Keys 按字典序列出 group 下的 key
func (s *MemoryStore) Keys(group string) ([]string, error) {
	keys := make([]string, 0, len(s.groups[group]))
	for k := range s.groups[group] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close 无操作
func (s *MemoryStore) Close() error { return nil }
