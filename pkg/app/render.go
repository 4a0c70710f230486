package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/overlay"
	"github.com/decker502/brushmarkers/pkg/utils"
)

var (
	backgroundColor  = color.RGBA{R: 8, G: 8, B: 12, A: 255}
	gridLineColor    = color.RGBA{A: config.GridLineAlpha}
	regionLineColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 90}
	hoverColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	playerColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	minimapBackColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

func newCanvas(screen *ebiten.Image) overlay.Canvas {
	return overlay.NewEbitenCanvas(screen)
}

// drawWorld 绘制主视图地形、网格线、悬停格子和玩家
func (a *App) drawWorld(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	camera := a.camera.Center()
	plane := a.client.Plane()
	minX, minY, maxX, maxY := utils.VisibleSceneTiles(camera)

	for sx := minX; sx <= maxX; sx++ {
		for sy := minY; sy <= maxY; sy++ {
			wp, ok := a.client.TileAt(sx, sy)
			if !ok {
				continue
			}
			wp.Plane = plane
			x, y := utils.SceneTileToScreen(sx, sy, camera)
			fx, fy := float32(x), float32(y)
			vector.DrawFilledRect(screen, fx, fy, config.TilePixels, config.TilePixels, TileColor(wp), false)
			vector.StrokeRect(screen, fx, fy, config.TilePixels, config.TilePixels, 1, gridLineColor, false)

			// 区域边界（副本中按模板坐标显示）
			if wp.RegionX() == 0 {
				vector.StrokeLine(screen, fx, fy, fx, fy+config.TilePixels, 2, regionLineColor, false)
			}
			if wp.RegionY() == 0 {
				vector.StrokeLine(screen, fx, fy+config.TilePixels, fx+config.TilePixels, fy+config.TilePixels, 2, regionLineColor, false)
			}
		}
	}

	if lp, ok := a.client.SelectedSceneTile(); ok {
		x, y := utils.SceneTileToScreen(lp.SceneX(), lp.SceneY(), camera)
		vector.StrokeRect(screen, float32(x), float32(y), config.TilePixels, config.TilePixels, 1, hoverColor, false)
	}

	vector.DrawFilledCircle(screen, float32(utils.ScreenCenterX), float32(utils.ScreenCenterY), config.TilePixels/3, playerColor, true)
}

// drawMinimap 绘制右上角小地图（每格 zoom 像素）
func (a *App) drawMinimap(screen *ebiten.Image) {
	vector.DrawFilledCircle(screen, config.MinimapCenterX, config.MinimapCenterY, config.MinimapRadius, minimapBackColor, true)

	zoom := a.client.MinimapZoom()
	player := a.client.PlayerLocal()
	px, py := player.SceneX(), player.SceneY()
	plane := a.client.Plane()
	reach := int(config.MinimapRadius / zoom)

	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			// 格子外角在圆内才绘制
			if math.Hypot(math.Abs(float64(dx))+0.5, math.Abs(float64(dy))+0.5)*zoom > config.MinimapRadius {
				continue
			}
			sx, sy := px+dx, py+dy
			if sx < 0 || sy < 0 || sx >= coords.SceneSize || sy >= coords.SceneSize {
				continue
			}
			wp, ok := a.client.TileAt(sx, sy)
			if !ok {
				continue
			}
			wp.Plane = plane

			// 玩家格子中心位于小地图圆心
			x := config.MinimapCenterX + (float64(dx)-0.5)*zoom
			y := config.MinimapCenterY - (float64(dy)+0.5)*zoom
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(zoom), float32(zoom), TileColor(wp), false)
		}
	}

	vector.DrawFilledCircle(screen, config.MinimapCenterX, config.MinimapCenterY, 2, playerColor, true)
}

// drawHUD 绘制状态和操作提示
func (a *App) drawHUD(screen *ebiten.Image) {
	player, _ := a.client.PlayerLocation()
	cfg := a.plugin.Config()

	status := fmt.Sprintf("Pos %d,%d plane %d  region %d  marks %d",
		player.X, player.Y, player.Plane, player.RegionID(), len(a.plugin.Points()))
	if a.client.IsInInstancedRegion() {
		status += fmt.Sprintf("  [instance r%d]", a.client.InstanceRotation())
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)

	brush := fmt.Sprintf("Brush color %d/%d  paint %v  main %v  minimap %v",
		a.plugin.ColorIndex()+1, config.ColorCount, cfg.PaintMode, cfg.Overlay.Main, cfg.Overlay.Minimap)
	ebitenutil.DebugPrintAt(screen, brush, 8, 24)
	vector.DrawFilledRect(screen, 8, 42, 24, 12, a.plugin.CurrentColor(), false)

	help := "Shift paint  Ctrl erase  " + cfg.Keys.CycleColor + " color  Click toggle  Arrows move\n" +
		"I instance  PgUp/PgDn plane  +/- zoom  O/M overlays  F11 fullscreen"
	if utils.IsMobile() {
		help = "Tap a tile to toggle its mark"
	}
	ebitenutil.DebugPrintAt(screen, help, 8, config.GameWindowHeight-36)
}
