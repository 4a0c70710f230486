package config

// 布局配置常量
// 本文件定义了演示宿主的窗口、网格和小地图布局参数

// Window 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640
)

// Tile Grid Configuration (主视图网格配置)
// 主视图为正交俯视图，摄像机始终以玩家所在格子为中心
const (
	// TilePixels 每格在主视图中的像素边长
	TilePixels = 32.0

	// GridLineAlpha 网格线透明度
	GridLineAlpha = 40
)

// Minimap Configuration (小地图配置)
const (
	// MinimapCenterX 小地图圆心 X（屏幕坐标）
	MinimapCenterX = GameWindowWidth - 90.0
	// MinimapCenterY 小地图圆心 Y（屏幕坐标）
	MinimapCenterY = 90.0
	// MinimapRadius 小地图半径（像素）
	MinimapRadius = 75.0

	// DefaultMinimapZoom 默认小地图缩放（每格像素数）
	DefaultMinimapZoom = 4.0
	// MinMinimapZoom / MaxMinimapZoom 缩放范围
	MinMinimapZoom = 2.0
	MaxMinimapZoom = 8.0
)

// GetMinimapBounds 返回小地图外接矩形
// 返回值：minX, minY, maxX, maxY
func GetMinimapBounds() (float64, float64, float64, float64) {
	return MinimapCenterX - MinimapRadius, MinimapCenterY - MinimapRadius,
		MinimapCenterX + MinimapRadius, MinimapCenterY + MinimapRadius
}

// ClampMinimapZoom 将缩放限制在允许范围内
func ClampMinimapZoom(zoom float64) float64 {
	if zoom < MinMinimapZoom {
		return MinMinimapZoom
	}
	if zoom > MaxMinimapZoom {
		return MaxMinimapZoom
	}
	return zoom
}

// Timing Configuration (时间配置)
const (
	// GameTickFrames 每个游戏 Tick 的帧数（60 FPS 下 0.1 秒）
	GameTickFrames = 6
	// PlayerMoveFrames 按住方向键时玩家每移动一格的帧数
	PlayerMoveFrames = 6
)
