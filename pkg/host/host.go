// Package host 定义插件与宿主客户端之间的契约
//
// 宿主集成层实现 Client 与 Projector，并把事件（Tick、按键、区域变化）
// 显式地转发给插件。插件本身不依赖任何具体的渲染或输入框架。
package host

import (
	"image"

	"github.com/decker502/brushmarkers/pkg/coords"
)

// GameState 客户端状态
type GameState int

const (
	GameStateUnknown GameState = iota
	GameStateStarting
	GameStateLoginScreen
	GameStateLoading
	GameStateLoggedIn
	GameStateHopping
)

// String 返回状态名称（用于日志）
func (s GameState) String() string {
	switch s {
	case GameStateStarting:
		return "STARTING"
	case GameStateLoginScreen:
		return "LOGIN_SCREEN"
	case GameStateLoading:
		return "LOADING"
	case GameStateLoggedIn:
		return "LOGGED_IN"
	case GameStateHopping:
		return "HOPPING"
	default:
		return "UNKNOWN"
	}
}

// Client 宿主客户端提供的运行时状态
type Client interface {
	coords.Scene

	// GameState 当前客户端状态
	GameState() GameState
	// MapRegions 当前已加载的区域 ID 列表，未加载时返回 nil
	MapRegions() []int
	// SelectedSceneTile 鼠标悬停的格子（本地坐标），没有悬停时返回 false
	SelectedSceneTile() (coords.LocalPoint, bool)
	// PlayerLocation 玩家所在世界坐标，未登录时返回 false
	PlayerLocation() (coords.WorldPoint, bool)
	// MinimapZoom 小地图缩放倍数（默认 4.0）
	MinimapZoom() float64
}

// Projector 宿主提供的投影函数
type Projector interface {
	// LocalToCanvas 将本地坐标投影到主视图屏幕坐标
	LocalToCanvas(lp coords.LocalPoint, plane int) (image.Point, bool)
	// LocalToMinimap 将本地坐标投影到小地图坐标，
	// 超出 maxDistance（本地单位）或不在小地图内时返回 false
	LocalToMinimap(lp coords.LocalPoint, maxDistance int) (image.Point, bool)
}
