// Package game 保存画笔插件的运行时界面状态
package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// BrushSettings 全局画笔设置
// 注意：这些设置不绑定到区域或账号，退出时保存、启动时恢复
type BrushSettings struct {
	ColorIndex int `yaml:"colorIndex"` // 当前画笔颜色下标 0-5

	// 覆盖层开关，nil 表示沿用配置文件
	MainOverlay    *bool `yaml:"mainOverlay,omitempty"`
	MinimapOverlay *bool `yaml:"minimapOverlay,omitempty"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *BrushSettings {
	return &BrushSettings{}
}

// SettingsManager 设置管理器
// 负责画笔设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	settings     *BrushSettings
	logger       zerolog.Logger
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - logger: 日志
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager, logger zerolog.Logger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       logger.With().Str("component", "SettingsManager").Logger(),
	}

	if err := sm.Load(); err != nil {
		sm.logger.Warn().Err(err).Msg("Failed to load settings, using defaults")
	}
	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded BrushSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	sm.logger.Debug().Int("colorIndex", loaded.ColorIndex).Msg("Settings loaded")
	return nil
}

// Save 保存设置到 gdata，降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug().Msg("Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *BrushSettings {
	return sm.settings
}

// SetColorIndex 记录画笔颜色下标
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetColorIndex(index int) {
	sm.settings.ColorIndex = index
}

// SetMainOverlay 记录主视图覆盖层开关
func (sm *SettingsManager) SetMainOverlay(enabled bool) {
	sm.settings.MainOverlay = &enabled
}

// SetMinimapOverlay 记录小地图覆盖层开关
func (sm *SettingsManager) SetMinimapOverlay(enabled bool) {
	sm.settings.MinimapOverlay = &enabled
}
