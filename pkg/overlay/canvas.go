// Package overlay 实现标记的两个绘制通道：主视图格子描边和小地图格子描边
package overlay

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas 绘制目标
type Canvas interface {
	// StrokePolygon 绘制闭合多边形描边
	StrokePolygon(pts []image.Point, width float32, clr color.RGBA)
	// FillPolygon 填充多边形
	FillPolygon(pts []image.Point, clr color.RGBA)
}

// EbitenCanvas 基于 ebiten/vector 的绘制目标
type EbitenCanvas struct {
	Screen *ebiten.Image
}

// NewEbitenCanvas 包装 ebiten 屏幕
func NewEbitenCanvas(screen *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{Screen: screen}
}

func polygonPath(pts []image.Point) *vector.Path {
	var path vector.Path
	for i, p := range pts {
		if i == 0 {
			path.MoveTo(float32(p.X), float32(p.Y))
		} else {
			path.LineTo(float32(p.X), float32(p.Y))
		}
	}
	path.Close()
	return &path
}

// StrokePolygon 绘制闭合多边形描边
func (c *EbitenCanvas) StrokePolygon(pts []image.Point, width float32, clr color.RGBA) {
	if len(pts) < 2 {
		return
	}
	drawOp := &vector.DrawPathOptions{AntiAlias: true}
	drawOp.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(c.Screen, polygonPath(pts), &vector.StrokeOptions{Width: width}, drawOp)
}

// FillPolygon 填充多边形
func (c *EbitenCanvas) FillPolygon(pts []image.Point, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	drawOp := &vector.DrawPathOptions{AntiAlias: true}
	drawOp.ColorScale.ScaleWithColor(clr)
	vector.FillPath(c.Screen, polygonPath(pts), &vector.FillOptions{}, drawOp)
}
