// Package app 提供画笔标记插件的演示宿主
//
// 该包模拟一个以格子为单位的游戏客户端：玩家在若干区域组成的世界中移动，
// 摄像机跟随玩家，右上角是小地图。插件通过 host.Client / host.Projector
// 读取客户端状态，宿主把按键、Tick、区域变化和单击事件转发给插件。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/game"
	"github.com/decker502/brushmarkers/pkg/host"
	"github.com/decker502/brushmarkers/pkg/plugin"
	"github.com/decker502/brushmarkers/pkg/storage"
	"github.com/decker502/brushmarkers/pkg/utils"
)

// DefaultStart 玩家默认出生点（区域 12850）
var DefaultStart = coords.WorldPoint{X: 3222, Y: 3218}

// Config 定义应用启动配置
type Config struct {
	// Plugin 插件配置，nil 时使用默认配置
	Plugin *config.PluginConfig
	// Store 标记存储，必须提供
	Store storage.Store
	// Settings 界面状态存储，可为 nil
	Settings *game.SettingsManager
	// Logger 日志
	Logger zerolog.Logger
	// Start 玩家出生点，nil 时使用 DefaultStart
	Start *coords.WorldPoint
}

// App 是演示宿主的核心包装器，实现 ebiten.Game 接口
type App struct {
	client *SimClient
	camera *Camera
	plugin *plugin.Plugin
	logger zerolog.Logger

	frame                    int
	moveCooldown             int
	focused                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并启动演示宿主
//
// 参数：
//   - cfg: 启动配置
//
// 返回：
//   - *App: 已启动插件的应用
//   - error: 缺少存储或出生点不可行走时返回错误
func NewApp(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("app: marker store is required")
	}

	start := DefaultStart
	if cfg.Start != nil {
		start = *cfg.Start
	}
	if !Walkable(start) {
		return nil, errors.New("app: start point is outside the demo world")
	}

	logger := cfg.Logger.With().Str("component", "App").Logger()
	client := NewSimClient(start)
	camera := NewCamera(client)

	p := plugin.New(plugin.Options{
		Client:    client,
		Projector: camera,
		Store:     cfg.Store,
		Config:    cfg.Plugin,
		Settings:  cfg.Settings,
		Logger:    cfg.Logger,
	})
	p.StartUp()

	logger.Info().
		Int("x", start.X).Int("y", start.Y).
		Ints("regions", client.MapRegions()).
		Msg("Demo world ready")

	return &App{
		client:  client,
		camera:  camera,
		plugin:  p,
		logger:  logger,
		focused: true,
	}, nil
}

// Update 更新演示宿主
// 每帧调用一次（通常每秒 60 次），每 GameTickFrames 帧产生一个游戏 Tick
func (a *App) Update() error {
	a.updateWindow()
	a.updateFocus()

	events := utils.PollKeyEvents()
	for _, k := range events.Down {
		a.plugin.OnKeyDown(k)
	}
	for _, k := range events.Up {
		a.plugin.OnKeyUp(k)
	}

	a.updateHostKeys()
	a.updateMovement()
	a.updatePointer()

	a.frame++
	if a.frame%config.GameTickFrames == 0 {
		a.plugin.OnTick()
	}
	return nil
}

// updateWindow F11 切换全屏
func (a *App) updateWindow() {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.logger.Debug().Msg("Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
}

// updateFocus 失去焦点时收不到 KeyUp，释放修饰键
func (a *App) updateFocus() {
	focused := ebiten.IsFocused()
	if a.focused && !focused {
		a.plugin.OnFocusLost()
	}
	a.focused = focused
}

// updateHostKeys 宿主自身的按键：副本、楼层、小地图缩放、覆盖层开关
func (a *App) updateHostKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		inInstance := a.client.ToggleInstance()
		a.logger.Info().Bool("instanced", inInstance).Int("rotation", a.client.InstanceRotation()).Msg("Instance toggled")
		a.loadScene()

	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.client.ChangePlane(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		a.client.ChangePlane(-1)

	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		a.client.SetMinimapZoom(a.client.MinimapZoom() + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		a.client.SetMinimapZoom(a.client.MinimapZoom() - 1)

	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		a.clearPlayerRegion()

	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		a.logger.Info().Bool("enabled", a.plugin.ToggleMainOverlay()).Msg("Main overlay toggled")
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.logger.Info().Bool("enabled", a.plugin.ToggleMinimapOverlay()).Msg("Minimap overlay toggled")
	}
}

// updateMovement 方向键移动玩家
func (a *App) updateMovement() {
	if a.moveCooldown > 0 {
		a.moveCooldown--
		return
	}

	dx, dy := 0, 0
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		dx = -1
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		dx = 1
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		dy = 1
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		dy = -1
	}
	if dx == 0 && dy == 0 {
		return
	}

	moved, sceneChanged := a.client.Move(dx, dy)
	if moved {
		a.moveCooldown = config.PlayerMoveFrames
	}
	if sceneChanged {
		a.loadScene()
	}
}

// updatePointer 鼠标/触摸悬停与单击
func (a *App) updatePointer() {
	pointer := utils.GetPointerState()
	if !pointer.Present {
		a.client.SetHovered(coords.LocalPoint{}, false)
		return
	}

	// 小地图上的指针不操作主视图
	if overMinimap(pointer.X, pointer.Y) {
		a.client.SetHovered(coords.LocalPoint{}, false)
		return
	}

	lp, ok := utils.MouseToSceneTile(pointer.X, pointer.Y, a.camera.Center())
	a.client.SetHovered(lp, ok)
	if ok && pointer.JustPressed {
		a.plugin.OnMarkTile(lp)
	}
}

// clearPlayerRegion 删除玩家所在区域（副本中为模板区域）的全部标记
func (a *App) clearPlayerRegion() {
	regionID, _, _, ok := coords.ToRegionRelative(a.client, a.client.PlayerLocal())
	if !ok {
		return
	}
	if err := a.plugin.ClearRegion(regionID); err != nil {
		a.logger.Warn().Err(err).Int("region", regionID).Msg("Failed to clear region")
	}
}

func overMinimap(x, y int) bool {
	minX, minY, maxX, maxY := config.GetMinimapBounds()
	fx, fy := float64(x), float64(y)
	return fx >= minX && fx < maxX && fy >= minY && fy < maxY
}

// loadScene 模拟客户端重新加载地图：Loading 之后回到 LoggedIn
func (a *App) loadScene() {
	a.client.SetGameState(host.GameStateLoading)
	a.plugin.OnGameStateChanged(host.GameStateLoading)
	a.client.SetGameState(host.GameStateLoggedIn)
	a.plugin.OnGameStateChanged(host.GameStateLoggedIn)

	a.logger.Debug().
		Int("baseX", a.client.BaseX()).Int("baseY", a.client.BaseY()).
		Ints("regions", a.client.MapRegions()).
		Msg("Scene loaded")
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.drawWorld(screen)
	a.drawMinimap(screen)
	a.plugin.Render(newCanvas(screen))
	a.drawHUD(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 关闭插件并保存界面状态
// 游戏循环结束后调用
func (a *App) Shutdown() {
	a.plugin.ShutDown()
}

// Plugin 返回插件实例
func (a *App) Plugin() *plugin.Plugin {
	return a.plugin
}

// Client 返回模拟客户端
func (a *App) Client() *SimClient {
	return a.client
}
