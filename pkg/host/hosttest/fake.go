// Package hosttest 提供测试用的宿主实现
package hosttest

import (
	"image"

	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
)

// Client 可直接修改字段的宿主客户端
type Client struct {
	Base      coords.WorldPoint // 场景左下角（Plane 字段为玩家楼层）
	Instanced bool
	Chunks    [][][]int
	State     host.GameState
	Regions   []int
	Hovered   *coords.LocalPoint
	Player    *coords.WorldPoint
	Zoom      float64
}

// NewClient 创建以 (baseX, baseY) 为场景原点、已登录的客户端
func NewClient(baseX, baseY int) *Client {
	return &Client{
		Base:  coords.WorldPoint{X: baseX, Y: baseY},
		State: host.GameStateLoggedIn,
		Zoom:  4.0,
	}
}

func (c *Client) BaseX() int                        { return c.Base.X }
func (c *Client) BaseY() int                        { return c.Base.Y }
func (c *Client) Plane() int                        { return c.Base.Plane }
func (c *Client) IsInInstancedRegion() bool         { return c.Instanced }
func (c *Client) InstanceTemplateChunks() [][][]int { return c.Chunks }
func (c *Client) GameState() host.GameState         { return c.State }
func (c *Client) MapRegions() []int                 { return c.Regions }
func (c *Client) MinimapZoom() float64              { return c.Zoom }

// SelectedSceneTile 返回悬停格子
func (c *Client) SelectedSceneTile() (coords.LocalPoint, bool) {
	if c.Hovered == nil {
		return coords.LocalPoint{}, false
	}
	return *c.Hovered, true
}

// PlayerLocation 返回玩家位置
func (c *Client) PlayerLocation() (coords.WorldPoint, bool) {
	if c.Player == nil {
		return coords.WorldPoint{}, false
	}
	return *c.Player, true
}

// Hover 让鼠标悬停在世界坐标 wp 所在格子上
func (c *Client) Hover(wp coords.WorldPoint) {
	lp := coords.LocalPoint{
		X: (wp.X-c.Base.X)<<coords.LocalCoordBits + coords.LocalTileSize/2,
		Y: (wp.Y-c.Base.Y)<<coords.LocalCoordBits + coords.LocalTileSize/2,
	}
	c.Hovered = &lp
}

// Unhover 取消悬停
func (c *Client) Unhover() {
	c.Hovered = nil
}

// Projector 线性投影：本地坐标除以 Scale，超出 Bounds 的点投影失败
type Projector struct {
	Scale         int
	Bounds        image.Rectangle
	MinimapBounds image.Rectangle
	// LastMaxDistance 记录最近一次小地图投影的最大距离
	LastMaxDistance int
}

// NewProjector 创建投影器：主视图每格 32 像素，小地图每格 4 像素
func NewProjector() *Projector {
	return &Projector{
		Scale:         coords.LocalTileSize / 32,
		Bounds:        image.Rect(0, 0, 104*32+1, 104*32+1),
		MinimapBounds: image.Rect(0, 0, 104*4+1, 104*4+1),
	}
}

// LocalToCanvas 投影到主视图
func (p *Projector) LocalToCanvas(lp coords.LocalPoint, plane int) (image.Point, bool) {
	pt := image.Pt(lp.X/p.Scale, lp.Y/p.Scale)
	if !pt.In(p.Bounds) {
		return image.Point{}, false
	}
	return pt, true
}

// LocalToMinimap 投影到小地图
func (p *Projector) LocalToMinimap(lp coords.LocalPoint, maxDistance int) (image.Point, bool) {
	p.LastMaxDistance = maxDistance
	pt := image.Pt(lp.X/32, lp.Y/32)
	if !pt.In(p.MinimapBounds) {
		return image.Point{}, false
	}
	return pt, true
}

var (
	_ host.Client    = (*Client)(nil)
	_ host.Projector = (*Projector)(nil)
)
