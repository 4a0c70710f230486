// Package plugin 组装画笔标记插件并向宿主暴露事件入口
//
// 宿主集成层负责把客户端事件转发到 Plugin：
//
//	p := plugin.New(plugin.Options{Client: c, Projector: pr, Store: st, Config: cfg})
//	p.StartUp()
//	// 每个 Tick
//	p.OnTick()
//	// 每帧
//	p.Render(canvas)
//
// 所有方法都必须在同一个 goroutine（Ebiten 的 Update/Draw）上调用。
package plugin

import (
	"image/color"

	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/controller"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/game"
	"github.com/decker502/brushmarkers/pkg/host"
	"github.com/decker502/brushmarkers/pkg/markers"
	"github.com/decker502/brushmarkers/pkg/overlay"
	"github.com/decker502/brushmarkers/pkg/storage"
)

// Options 插件依赖
type Options struct {
	Client    host.Client
	Projector host.Projector
	Store     storage.Store
	Config    *config.PluginConfig  // nil 时使用默认配置
	Settings  *game.SettingsManager // 可为 nil，不保存界面状态
	Logger    zerolog.Logger
}

// Plugin 画笔标记插件
type Plugin struct {
	client   host.Client
	cfg      *config.PluginConfig
	settings *game.SettingsManager
	logger   zerolog.Logger

	repo    *markers.Repository
	store   *markers.Store
	input   *controller.InputController
	tiles   *overlay.TileOverlay
	minimap *overlay.MinimapOverlay

	started bool
}

// New 创建插件
//
// 参数：
//   - opts: 插件依赖，Client、Projector 和 Store 必须提供
//
// 返回：
//   - *Plugin: 尚未启动的插件，需调用 StartUp()
func New(opts Options) *Plugin {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultPluginConfig()
	}
	logger := opts.Logger.With().Str("component", "BrushMarkers").Logger()

	repo := markers.NewRepository(opts.Store, opts.Logger)
	store := markers.NewStore(repo, opts.Client, opts.Logger)
	input := controller.NewInputController(opts.Client, store, cfg, opts.Logger)

	return &Plugin{
		client:   opts.Client,
		cfg:      cfg,
		settings: opts.Settings,
		logger:   logger,
		repo:     repo,
		store:    store,
		input:    input,
		tiles:    overlay.NewTileOverlay(opts.Client, opts.Projector, store, input, cfg),
		minimap:  overlay.NewMinimapOverlay(opts.Client, opts.Projector, store, input, cfg),
	}
}

// StartUp 恢复界面状态，客户端已登录时加载当前区域的标记
func (p *Plugin) StartUp() {
	if p.settings != nil {
		s := p.settings.GetSettings()
		p.input.SetColorIndex(s.ColorIndex)
		if s.MainOverlay != nil {
			p.cfg.Overlay.Main = *s.MainOverlay
		}
		if s.MinimapOverlay != nil {
			p.cfg.Overlay.Minimap = *s.MinimapOverlay
		}
	}

	p.started = true
	if p.client.GameState() == host.GameStateLoggedIn {
		p.reload()
	}
	p.logger.Info().Int("colorIndex", p.input.ColorIndex()).Msg("Plugin started")
}

// ShutDown 保存界面状态并清空内存中的标记
func (p *Plugin) ShutDown() {
	if p.settings != nil {
		p.settings.SetColorIndex(p.input.ColorIndex())
		p.settings.SetMainOverlay(p.cfg.Overlay.Main)
		p.settings.SetMinimapOverlay(p.cfg.Overlay.Minimap)
		if err := p.settings.Save(); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to save settings")
		}
	}

	p.input.Reset()
	p.store.Clear()
	p.started = false
	p.logger.Info().Msg("Plugin stopped")
}

// OnGameStateChanged 游戏状态变化，只有进入 LoggedIn 时重新加载
func (p *Plugin) OnGameStateChanged(state host.GameState) {
	if !p.started {
		return
	}
	p.logger.Debug().Stringer("state", state).Msg("Game state changed")
	if state != host.GameStateLoggedIn {
		return
	}
	p.reload()
}

// OnRegionChange 加载的区域集合变化
func (p *Plugin) OnRegionChange() {
	if !p.started {
		return
	}
	p.reload()
}

// OnTick 每个客户端 Tick 调用一次
func (p *Plugin) OnTick() {
	if !p.started {
		return
	}
	p.input.OnTick()
}

// OnKeyDown 按键按下
func (p *Plugin) OnKeyDown(key host.Key) {
	if !p.started {
		return
	}
	p.input.OnKeyDown(key)
}

// OnKeyUp 按键释放
func (p *Plugin) OnKeyUp(key host.Key) {
	if !p.started {
		return
	}
	p.input.OnKeyUp(key)
}

// OnFocusLost 窗口失去焦点时释放修饰键，避免错过 KeyUp 后持续涂色
func (p *Plugin) OnFocusLost() {
	p.input.Reset()
}

// OnMarkTile 单击标记格子（切换语义）
//
// 返回：
//   - bool: 格子无法解析时为 false
func (p *Plugin) OnMarkTile(lp coords.LocalPoint) bool {
	if !p.started {
		return false
	}
	return p.input.MarkTile(lp)
}

// ClearRegion 删除一个区域的全部标记
func (p *Plugin) ClearRegion(regionID int) error {
	if err := p.store.ClearRegion(regionID); err != nil {
		return err
	}
	p.logger.Info().Int("region", regionID).Msg("Region cleared")
	return nil
}

// Render 先绘制小地图再绘制主视图
func (p *Plugin) Render(canvas overlay.Canvas) {
	if !p.started {
		return
	}
	p.minimap.Render(canvas)
	p.tiles.Render(canvas)
}

// Points 当前标记快照
func (p *Plugin) Points() []markers.ColorTileMarker {
	return p.store.Points()
}

// CurrentColor 当前画笔颜色
func (p *Plugin) CurrentColor() color.RGBA {
	return p.input.CurrentColor()
}

// ColorIndex 当前画笔颜色下标
func (p *Plugin) ColorIndex() int {
	return p.input.ColorIndex()
}

// Config 插件配置（覆盖层开关可在运行时修改）
func (p *Plugin) Config() *config.PluginConfig {
	return p.cfg
}

// ToggleMainOverlay 切换主视图覆盖层
func (p *Plugin) ToggleMainOverlay() bool {
	p.cfg.Overlay.Main = !p.cfg.Overlay.Main
	return p.cfg.Overlay.Main
}

// ToggleMinimapOverlay 切换小地图覆盖层
func (p *Plugin) ToggleMinimapOverlay() bool {
	p.cfg.Overlay.Minimap = !p.cfg.Overlay.Minimap
	return p.cfg.Overlay.Minimap
}

// Repository 持久化层
func (p *Plugin) Repository() *markers.Repository {
	return p.repo
}

func (p *Plugin) reload() {
	regions := p.client.MapRegions()
	p.store.Reload(regions)
	p.logger.Debug().Ints("regions", regions).Int("points", p.store.Len()).Msg("Marks reloaded")
}
