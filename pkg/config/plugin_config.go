package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/decker502/brushmarkers/pkg/host"
)

// ColorCount 可选画笔颜色数量
const ColorCount = 6

// 存储后端名称
const (
	BackendGdata  = "gdata"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrInvalidColor 颜色字符串无法解析
var ErrInvalidColor = errors.New("invalid color")

// OverlayConfig 覆盖层配置
type OverlayConfig struct {
	Main         bool    `mapstructure:"main"`         // 主视图覆盖层开关
	Minimap      bool    `mapstructure:"minimap"`      // 小地图覆盖层开关
	FillOpacity  int     `mapstructure:"fillOpacity"`  // 主视图填充透明度 0-255，0 表示不填充
	BorderWidth  float64 `mapstructure:"borderWidth"`  // 主视图描边宽度
	DrawDistance int     `mapstructure:"drawDistance"` // 主视图最大绘制距离（格）
}

// KeysConfig 按键配置
type KeysConfig struct {
	CycleColor string `mapstructure:"cycleColor"` // 切换颜色按键
}

// StorageConfig 持久化配置
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // gdata / sqlite / memory
	AppName string `mapstructure:"appName"` // gdata 应用名
	Path    string `mapstructure:"path"`    // SQLite 文件路径
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// PluginConfig 插件配置
type PluginConfig struct {
	Overlay   OverlayConfig `mapstructure:"overlay"`
	PaintMode bool          `mapstructure:"paintMode"`
	Colors    []string      `mapstructure:"colors"`
	Keys      KeysConfig    `mapstructure:"keys"`
	Storage   StorageConfig `mapstructure:"storage"`
	Log       LogConfig     `mapstructure:"log"`

	palette  [ColorCount]color.RGBA
	cycleKey host.Key
}

// DefaultColors 默认的六种画笔颜色
var DefaultColors = []string{
	"#FFFF00FF", // 黄
	"#FF0000FF", // 红
	"#00FF00FF", // 绿
	"#0000FFFF", // 蓝
	"#FF00FFFF", // 品红
	"#FFFFFFFF", // 白
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("overlay.main", true)
	v.SetDefault("overlay.minimap", true)
	v.SetDefault("overlay.fillOpacity", 50)
	v.SetDefault("overlay.borderWidth", 2.0)
	v.SetDefault("overlay.drawDistance", 32)

	v.SetDefault("paintMode", true)
	v.SetDefault("colors", DefaultColors)
	v.SetDefault("keys.cycleColor", "Tab")

	v.SetDefault("storage.backend", BackendGdata)
	v.SetDefault("storage.appName", "brush_markers")
	v.SetDefault("storage.path", "brushmarkers.db")

	v.SetDefault("log.level", "info")
}

// LoadPluginConfig 读取插件配置
//
// 参数：
//   - path: YAML 配置文件路径，为空时只使用默认值和环境变量
//
// 返回：
//   - *PluginConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadPluginConfig(path string) (*PluginConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BRUSHMARKERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &PluginConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPluginConfig 返回默认配置
func DefaultPluginConfig() *PluginConfig {
	cfg, err := LoadPluginConfig("")
	if err != nil {
		// 默认值本身必须合法
		panic(err)
	}
	return cfg
}

// Validate 校验配置并解析颜色与按键
func (c *PluginConfig) Validate() error {
	if len(c.Colors) != ColorCount {
		return fmt.Errorf("colors: expected %d entries, got %d", ColorCount, len(c.Colors))
	}
	for i, s := range c.Colors {
		clr, err := ParseColor(s)
		if err != nil {
			return fmt.Errorf("colors[%d]: %w", i, err)
		}
		c.palette[i] = clr
	}

	key, err := host.ParseKey(c.Keys.CycleColor)
	if err != nil {
		return fmt.Errorf("keys.cycleColor: %w", err)
	}
	c.cycleKey = key

	if c.Overlay.FillOpacity < 0 || c.Overlay.FillOpacity > 255 {
		return fmt.Errorf("overlay.fillOpacity: %d out of range 0-255", c.Overlay.FillOpacity)
	}

	switch c.Storage.Backend {
	case BackendGdata, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	return nil
}

// Color 返回第 index 个画笔颜色，越界时取最后一个
func (c *PluginConfig) Color(index int) color.RGBA {
	if index < 0 || index >= ColorCount {
		index = ColorCount - 1
	}
	return c.palette[index]
}

// SetColor 修改第 index 个画笔颜色
func (c *PluginConfig) SetColor(index int, clr color.RGBA) {
	if index < 0 || index >= ColorCount {
		return
	}
	c.palette[index] = clr
	if len(c.Colors) == ColorCount {
		c.Colors[index] = FormatColor(clr)
	}
}

// CycleKey 返回切换颜色按键
func (c *PluginConfig) CycleKey() host.Key {
	return c.cycleKey
}

// ParseColor 解析 #RRGGBB 或 #RRGGBBAA 格式的颜色
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor 格式化为 #RRGGBBAA
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
