package overlay

import (
	"image"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
)

// minimapBaseDistance 默认缩放 (4.0) 下小地图的最大绘制距离：20 格
const minimapBaseDistance = 20 << coords.LocalCoordBits

// rectTransforms 格子四个角相对于左下角的本地偏移
var rectTransforms = [4][2]int{
	{0, 0},
	{0, coords.LocalTileSize},
	{coords.LocalTileSize, coords.LocalTileSize},
	{coords.LocalTileSize, 0},
}

// MinimapOverlay 小地图覆盖层
//
// 最大绘制距离与小地图缩放成反比；任何一个角落在小地图外都整体跳过该格子。
type MinimapOverlay struct {
	client    host.Client
	projector host.Projector
	points    PointSource
	colors    ColorSource
	cfg       *config.PluginConfig
}

// NewMinimapOverlay 创建小地图覆盖层
func NewMinimapOverlay(client host.Client, projector host.Projector, points PointSource, colors ColorSource, cfg *config.PluginConfig) *MinimapOverlay {
	return &MinimapOverlay{
		client:    client,
		projector: projector,
		points:    points,
		colors:    colors,
		cfg:       cfg,
	}
}

// MaxDistance 当前缩放下的最大绘制距离（本地单位）
func (o *MinimapOverlay) MaxDistance() int {
	zoom := o.client.MinimapZoom()
	if zoom <= 0 {
		zoom = config.DefaultMinimapZoom
	}
	return int(float64(minimapBaseDistance) * 4.0 / zoom)
}

// Render 绘制一帧
func (o *MinimapOverlay) Render(canvas Canvas) {
	if !o.cfg.Overlay.Minimap {
		return
	}

	plane := o.client.Plane()
	maxDist := o.MaxDistance()

	for _, point := range o.points.Points() {
		wp := point.Point
		if wp.Plane != plane || !wp.IsInScene(o.client) {
			continue
		}

		x := (wp.X - o.client.BaseX()) << coords.LocalCoordBits
		y := (wp.Y - o.client.BaseY()) << coords.LocalCoordBits

		rect := make([]image.Point, 0, len(rectTransforms))
		for _, t := range rectTransforms {
			mp, ok := o.projector.LocalToMinimap(coords.LocalPoint{X: x + t[0], Y: y + t[1]}, maxDist)
			if !ok {
				rect = nil
				break
			}
			rect = append(rect, mp)
		}
		if rect == nil {
			continue
		}

		canvas.StrokePolygon(rect, 1, premultiply(point.ResolveColor(o.colors.CurrentColor())))
	}
}
