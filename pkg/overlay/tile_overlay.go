package overlay

import (
	"image"
	"image/color"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
	"github.com/decker502/brushmarkers/pkg/markers"
)

// PointSource 提供当前标记快照
type PointSource interface {
	Points() []markers.ColorTileMarker
}

// ColorSource 提供当前画笔颜色（标记没有颜色时的回退值）
type ColorSource interface {
	CurrentColor() color.RGBA
}

// TileOverlay 主视图覆盖层
//
// 对当前楼层、在绘制距离内的每个标记，把格子四个角投影到屏幕并绘制描边，
// 按配置的透明度填充。任何一个角投影失败都跳过该格子。
type TileOverlay struct {
	client    host.Client
	projector host.Projector
	points    PointSource
	colors    ColorSource
	cfg       *config.PluginConfig
}

// NewTileOverlay 创建主视图覆盖层
func NewTileOverlay(client host.Client, projector host.Projector, points PointSource, colors ColorSource, cfg *config.PluginConfig) *TileOverlay {
	return &TileOverlay{
		client:    client,
		projector: projector,
		points:    points,
		colors:    colors,
		cfg:       cfg,
	}
}

// Render 绘制一帧
func (o *TileOverlay) Render(canvas Canvas) {
	if !o.cfg.Overlay.Main {
		return
	}

	player, hasPlayer := o.client.PlayerLocation()
	plane := o.client.Plane()

	for _, point := range o.points.Points() {
		wp := point.Point
		if wp.Plane != plane {
			continue
		}
		if hasPlayer && o.cfg.Overlay.DrawDistance > 0 && wp.DistanceTo(player) >= o.cfg.Overlay.DrawDistance {
			continue
		}

		poly, ok := o.tilePoly(wp)
		if !ok {
			continue
		}

		clr := point.ResolveColor(o.colors.CurrentColor())
		if o.cfg.Overlay.FillOpacity > 0 {
			fill := clr
			fill.A = uint8(o.cfg.Overlay.FillOpacity)
			canvas.FillPolygon(poly, premultiply(fill))
		}
		canvas.StrokePolygon(poly, float32(o.cfg.Overlay.BorderWidth), premultiply(clr))
	}
}

// tilePoly 投影格子四个角（以格子中心的本地坐标为基准 ±半格）
func (o *TileOverlay) tilePoly(wp coords.WorldPoint) ([]image.Point, bool) {
	lp, ok := coords.FromWorld(o.client, wp)
	if !ok {
		return nil, false
	}

	const half = coords.LocalTileSize / 2
	corners := [4]coords.LocalPoint{
		{X: lp.X - half, Y: lp.Y - half},
		{X: lp.X + half, Y: lp.Y - half},
		{X: lp.X + half, Y: lp.Y + half},
		{X: lp.X - half, Y: lp.Y + half},
	}

	poly := make([]image.Point, 0, len(corners))
	for _, c := range corners {
		p, ok := o.projector.LocalToCanvas(c, wp.Plane)
		if !ok {
			return nil, false
		}
		poly = append(poly, p)
	}
	return poly, true
}

// premultiply color.RGBA 要求预乘 alpha
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}
