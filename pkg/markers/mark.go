// Package markers 实现画笔标记的数据模型、持久化和内存标记集合
package markers

import (
	"fmt"
	"image/color"

	"github.com/decker502/brushmarkers/pkg/coords"
)

// Mark 一个持久化的格子标记
//
// 身份由 (RegionID, RegionX, RegionY, Plane) 决定，颜色不参与比较：
// 按位置切换标记时忽略颜色。
type Mark struct {
	RegionID int
	RegionX  int
	RegionY  int
	Plane    int
	Color    *color.RGBA // nil 表示旧版数据没有颜色，渲染时使用当前画笔颜色
}

// NewMark 创建带颜色的标记
func NewMark(regionID, regionX, regionY, plane int, c color.RGBA) Mark {
	return Mark{RegionID: regionID, RegionX: regionX, RegionY: regionY, Plane: plane, Color: &c}
}

// SameTile 判断两个标记是否指向同一个格子（忽略颜色）
func (m Mark) SameTile(other Mark) bool {
	return m.RegionID == other.RegionID &&
		m.RegionX == other.RegionX &&
		m.RegionY == other.RegionY &&
		m.Plane == other.Plane
}

// WorldPoint 返回标记对应的模板世界坐标
func (m Mark) WorldPoint() coords.WorldPoint {
	return coords.FromRegion(m.RegionID, m.RegionX, m.RegionY, m.Plane)
}

// String 用于日志
func (m Mark) String() string {
	if m.Color == nil {
		return fmt.Sprintf("Mark{region=%d x=%d y=%d z=%d}", m.RegionID, m.RegionX, m.RegionY, m.Plane)
	}
	c := *m.Color
	return fmt.Sprintf("Mark{region=%d x=%d y=%d z=%d color=#%02X%02X%02X%02X}",
		m.RegionID, m.RegionX, m.RegionY, m.Plane, c.R, c.G, c.B, c.A)
}

// indexOf 查找同一格子的标记下标，不存在返回 -1
func indexOf(marks []Mark, m Mark) int {
	for i := range marks {
		if marks[i].SameTile(m) {
			return i
		}
	}
	return -1
}

// ColorTileMarker 渲染用的标记：展开副本后的世界坐标 + 颜色
// 每次重新加载时重建，不会被持久化
type ColorTileMarker struct {
	Point coords.WorldPoint
	Color *color.RGBA
}

// ResolveColor 返回标记颜色，没有颜色时使用 fallback（当前画笔颜色）
func (c ColorTileMarker) ResolveColor(fallback color.RGBA) color.RGBA {
	if c.Color == nil {
		return fallback
	}
	return *c.Color
}
