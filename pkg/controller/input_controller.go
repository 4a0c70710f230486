// Package controller 处理画笔模式的输入：修饰键状态、颜色切换和每个 Tick 的涂色
package controller

import (
	"image/color"

	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
	"github.com/decker502/brushmarkers/pkg/markers"
)

// InputController 画笔输入状态机
//
// 三个相互独立的状态：Ctrl 是否按住、Shift 是否按住、当前颜色下标 (0-5)。
// 每个 Tick：画笔模式开启且有悬停格子时，Shift 优先于 Ctrl：
//   - Shift 按住：添加标记（已存在则不变）
//   - Ctrl 按住：删除标记（不存在则不变）
//
// 两种情况都会无条件保存并重新加载，按住按键期间每个 Tick 重复一次。
type InputController struct {
	client host.Client
	store  *markers.Store
	cfg    *config.PluginConfig
	logger zerolog.Logger

	ctrlHeld   bool
	shiftHeld  bool
	colorIndex int
}

// NewInputController 创建输入控制器
func NewInputController(client host.Client, store *markers.Store, cfg *config.PluginConfig, logger zerolog.Logger) *InputController {
	return &InputController{
		client: client,
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "InputController").Logger(),
	}
}

// OnKeyDown 处理按键按下
func (c *InputController) OnKeyDown(key host.Key) {
	switch key {
	case host.KeyControl:
		c.ctrlHeld = true
	case host.KeyShift:
		c.shiftHeld = true
	}

	// 切换颜色只在画笔模式下生效
	if key == c.cfg.CycleKey() && c.cfg.PaintMode {
		c.CycleColor()
	}
}

// OnKeyUp 处理按键释放
func (c *InputController) OnKeyUp(key host.Key) {
	switch key {
	case host.KeyControl:
		c.ctrlHeld = false
	case host.KeyShift:
		c.shiftHeld = false
	}
}

// CycleColor 切换到下一个颜色，超过最后一个时回到第一个
func (c *InputController) CycleColor() {
	c.colorIndex = (c.colorIndex + 1) % config.ColorCount
	c.logger.Debug().Int("colorIndex", c.colorIndex).Msg("Color changed")
}

// OnTick 每个客户端 Tick 调用一次
func (c *InputController) OnTick() {
	if !c.cfg.PaintMode {
		return
	}
	if !c.shiftHeld && !c.ctrlHeld {
		return
	}

	lp, ok := c.client.SelectedSceneTile()
	if !ok {
		return
	}
	mark, ok := c.markAt(lp)
	if !ok {
		return
	}

	if c.shiftHeld {
		if err := c.store.Add(mark); err != nil {
			c.logger.Warn().Err(err).Stringer("mark", mark).Msg("Failed to add mark")
		}
	} else if c.ctrlHeld {
		if err := c.store.Remove(mark); err != nil {
			c.logger.Warn().Err(err).Stringer("mark", mark).Msg("Failed to remove mark")
		}
	}
}

// MarkTile 单击切换格子标记（切换语义，与 Tick 的添加/删除语义不同）
//
// 返回：
//   - bool: 格子无法解析时为 false
func (c *InputController) MarkTile(lp coords.LocalPoint) bool {
	mark, ok := c.markAt(lp)
	if !ok {
		return false
	}
	if _, err := c.store.Toggle(mark); err != nil {
		c.logger.Warn().Err(err).Stringer("mark", mark).Msg("Failed to toggle mark")
	}
	return true
}

// markAt 将本地坐标解析为使用当前颜色的区域标记
// 副本中的格子会折叠回模板格子，楼层取玩家当前楼层
func (c *InputController) markAt(lp coords.LocalPoint) (markers.Mark, bool) {
	if c.client == nil {
		return markers.Mark{}, false
	}
	regionID, rx, ry, ok := coords.ToRegionRelative(c.client, lp)
	if !ok {
		return markers.Mark{}, false
	}
	return markers.NewMark(regionID, rx, ry, c.client.Plane(), c.CurrentColor()), true
}

// CurrentColor 当前画笔颜色
func (c *InputController) CurrentColor() color.RGBA {
	return c.cfg.Color(c.colorIndex)
}

// ColorIndex 当前颜色下标
func (c *InputController) ColorIndex() int {
	return c.colorIndex
}

// SetColorIndex 设置颜色下标（用于恢复保存的设置），越界值取模
func (c *InputController) SetColorIndex(index int) {
	c.colorIndex = ((index % config.ColorCount) + config.ColorCount) % config.ColorCount
}

// CtrlHeld Ctrl 是否按住
func (c *InputController) CtrlHeld() bool { return c.ctrlHeld }

// ShiftHeld Shift 是否按住
func (c *InputController) ShiftHeld() bool { return c.shiftHeld }

// Reset 释放所有修饰键（窗口失焦或插件关闭时调用）
func (c *InputController) Reset() {
	c.ctrlHeld = false
	c.shiftHeld = false
}
