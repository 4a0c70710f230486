package utils

import (
	"math"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
)

// 主视图网格参数
// 摄像机位于屏幕中心，北方朝上（本地 Y 增大时屏幕 Y 减小）
const (
	ScreenCenterX = config.GameWindowWidth / 2.0
	ScreenCenterY = config.GameWindowHeight / 2.0

	// pixelsPerUnit 每个本地坐标单位对应的像素数
	pixelsPerUnit = config.TilePixels / coords.LocalTileSize
)

// ScreenToLocal 将屏幕坐标转换为本地坐标
// 参数:
//   - screenX, screenY: 屏幕坐标
//   - camera: 摄像机（屏幕中心）对应的本地坐标
//
// 返回:
//   - coords.LocalPoint: 本地坐标（可能在场景外）
func ScreenToLocal(screenX, screenY float64, camera coords.LocalPoint) coords.LocalPoint {
	return coords.LocalPoint{
		X: camera.X + int(math.Floor((screenX-ScreenCenterX)/pixelsPerUnit)),
		Y: camera.Y + int(math.Floor((ScreenCenterY-screenY)/pixelsPerUnit)),
	}
}

// LocalToScreen 将本地坐标转换为屏幕坐标
func LocalToScreen(lp, camera coords.LocalPoint) (x, y float64) {
	x = ScreenCenterX + float64(lp.X-camera.X)*pixelsPerUnit
	y = ScreenCenterY - float64(lp.Y-camera.Y)*pixelsPerUnit
	return x, y
}

// MouseToSceneTile 将鼠标屏幕坐标转换为场景格子
// 参数:
//   - mouseX, mouseY: 鼠标的屏幕坐标
//   - camera: 摄像机对应的本地坐标
//
// 返回:
//   - coords.LocalPoint: 格子中心的本地坐标
//   - isValid: 是否在场景 (0-103) 范围内
func MouseToSceneTile(mouseX, mouseY int, camera coords.LocalPoint) (coords.LocalPoint, bool) {
	lp := ScreenToLocal(float64(mouseX), float64(mouseY), camera)
	if lp.X < 0 || lp.Y < 0 {
		return coords.LocalPoint{}, false
	}

	sceneX, sceneY := lp.SceneX(), lp.SceneY()
	if sceneX >= coords.SceneSize || sceneY >= coords.SceneSize {
		return coords.LocalPoint{}, false
	}

	return SceneTileCenter(sceneX, sceneY), true
}

// SceneTileCenter 返回场景格子中心的本地坐标
func SceneTileCenter(sceneX, sceneY int) coords.LocalPoint {
	return coords.LocalPoint{
		X: sceneX<<coords.LocalCoordBits + coords.LocalTileSize/2,
		Y: sceneY<<coords.LocalCoordBits + coords.LocalTileSize/2,
	}
}

// SceneTileToScreen 返回场景格子左上角的屏幕坐标
//
// 格子左上角对应本地坐标 (x, y+128)，因为屏幕 Y 轴与本地 Y 轴方向相反
func SceneTileToScreen(sceneX, sceneY int, camera coords.LocalPoint) (x, y float64) {
	return LocalToScreen(coords.LocalPoint{
		X: sceneX << coords.LocalCoordBits,
		Y: (sceneY + 1) << coords.LocalCoordBits,
	}, camera)
}

// VisibleSceneTiles 返回屏幕内可见的场景格子范围（闭区间，已裁剪到场景内）
func VisibleSceneTiles(camera coords.LocalPoint) (minX, minY, maxX, maxY int) {
	topLeft := ScreenToLocal(0, 0, camera)
	bottomRight := ScreenToLocal(config.GameWindowWidth-1, config.GameWindowHeight-1, camera)

	minX = clampScene(floorDiv(topLeft.X, coords.LocalTileSize))
	maxX = clampScene(floorDiv(bottomRight.X, coords.LocalTileSize))
	minY = clampScene(floorDiv(bottomRight.Y, coords.LocalTileSize))
	maxY = clampScene(floorDiv(topLeft.Y, coords.LocalTileSize))
	return minX, minY, maxX, maxY
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clampScene(v int) int {
	if v < 0 {
		return 0
	}
	if v >= coords.SceneSize {
		return coords.SceneSize - 1
	}
	return v
}
