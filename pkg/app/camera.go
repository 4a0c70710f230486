package app

import (
	"image"
	"math"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
	"github.com/decker502/brushmarkers/pkg/utils"
)

// canvasMargin 投影允许超出屏幕的像素数，屏幕边缘的格子仍能完整投影
const canvasMargin = config.TilePixels

// Camera 以玩家为中心的正交投影，实现 host.Projector
type Camera struct {
	client *SimClient
}

// NewCamera 创建跟随玩家的摄像机
func NewCamera(client *SimClient) *Camera {
	return &Camera{client: client}
}

// Center 摄像机（屏幕中心）对应的本地坐标
func (c *Camera) Center() coords.LocalPoint {
	return c.client.PlayerLocal()
}

// LocalToCanvas 投影到主视图；楼层不同或远离屏幕时失败
func (c *Camera) LocalToCanvas(lp coords.LocalPoint, plane int) (image.Point, bool) {
	if plane != c.client.Plane() {
		return image.Point{}, false
	}
	x, y := utils.LocalToScreen(lp, c.Center())
	if x < -canvasMargin || y < -canvasMargin ||
		x > config.GameWindowWidth+canvasMargin || y > config.GameWindowHeight+canvasMargin {
		return image.Point{}, false
	}
	return image.Pt(int(math.Round(x)), int(math.Round(y))), true
}

// LocalToMinimap 投影到小地图；与玩家的距离达到 maxDistance 时失败
//
// 小地图每格 zoom 像素，北方朝上
func (c *Camera) LocalToMinimap(lp coords.LocalPoint, maxDistance int) (image.Point, bool) {
	center := c.Center()
	dx := float64(lp.X - center.X)
	dy := float64(lp.Y - center.Y)
	if math.Hypot(dx, dy) >= float64(maxDistance) {
		return image.Point{}, false
	}

	scale := c.client.MinimapZoom() / coords.LocalTileSize
	x := config.MinimapCenterX + dx*scale
	y := config.MinimapCenterY - dy*scale
	return image.Pt(int(math.Round(x)), int(math.Round(y))), true
}

var _ host.Projector = (*Camera)(nil)
