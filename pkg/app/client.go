package app

import (
	"sort"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
)

// 场景加载参数
const (
	// sceneEdge 玩家距场景边缘少于该格数时重新加载场景
	sceneEdge = 16
	// sceneCenterChunks 重新加载后玩家所在区块距场景左下角的区块数
	sceneCenterChunks = 6
)

// instanceBase 副本场景左下角（远离演示世界）
var instanceBase = coords.WorldPoint{X: 100 * coords.RegionSize, Y: 100 * coords.RegionSize}

// SimClient 模拟游戏客户端，实现 host.Client
//
// 玩家在 104x104 的已加载场景中移动，接近边缘时场景以区块对齐的方式重新加载。
// 副本由当前场景的 13x13 个区块整体旋转后拼成，位于 instanceBase。
type SimClient struct {
	base    coords.WorldPoint // 场景左下角（Plane 未使用）
	player  coords.WorldPoint
	state   host.GameState
	hovered *coords.LocalPoint
	zoom    float64

	instanced        bool
	chunks           [][][]int
	instanceRotation int
	returnPoint      coords.WorldPoint
}

// NewSimClient 创建已登录、玩家位于 start 的客户端
func NewSimClient(start coords.WorldPoint) *SimClient {
	c := &SimClient{
		player: start,
		state:  host.GameStateLoggedIn,
		zoom:   config.DefaultMinimapZoom,
	}
	c.recenter()
	return c
}

func (c *SimClient) BaseX() int                        { return c.base.X }
func (c *SimClient) BaseY() int                        { return c.base.Y }
func (c *SimClient) Plane() int                        { return c.player.Plane }
func (c *SimClient) IsInInstancedRegion() bool         { return c.instanced }
func (c *SimClient) InstanceTemplateChunks() [][][]int { return c.chunks }
func (c *SimClient) GameState() host.GameState         { return c.state }
func (c *SimClient) MinimapZoom() float64              { return c.zoom }

// SetGameState 修改游戏状态
func (c *SimClient) SetGameState(state host.GameState) {
	c.state = state
}

// PlayerLocation 玩家世界坐标（副本中为副本坐标）
func (c *SimClient) PlayerLocation() (coords.WorldPoint, bool) {
	return c.player, true
}

// PlayerLocal 玩家所在格子中心的本地坐标
func (c *SimClient) PlayerLocal() coords.LocalPoint {
	return coords.LocalPoint{
		X: (c.player.X-c.base.X)<<coords.LocalCoordBits + coords.LocalTileSize/2,
		Y: (c.player.Y-c.base.Y)<<coords.LocalCoordBits + coords.LocalTileSize/2,
	}
}

// SelectedSceneTile 鼠标悬停的格子
func (c *SimClient) SelectedSceneTile() (coords.LocalPoint, bool) {
	if c.hovered == nil {
		return coords.LocalPoint{}, false
	}
	return *c.hovered, true
}

// SetHovered 设置悬停格子，ok 为 false 时清除
func (c *SimClient) SetHovered(lp coords.LocalPoint, ok bool) {
	if !ok {
		c.hovered = nil
		return
	}
	c.hovered = &lp
}

// SetMinimapZoom 修改小地图缩放（限制在允许范围内）
func (c *SimClient) SetMinimapZoom(zoom float64) {
	c.zoom = config.ClampMinimapZoom(zoom)
}

// MapRegions 当前场景覆盖的区域
// 副本中返回模板区块所在的区域
func (c *SimClient) MapRegions() []int {
	seen := map[int]bool{}
	if c.instanced {
		for z := range c.chunks {
			for x := range c.chunks[z] {
				for _, data := range c.chunks[z][x] {
					wp, _ := coords.FromLocalInstance(templateScene{data}, coords.LocalPoint{})
					seen[wp.RegionID()] = true
				}
			}
		}
	} else {
		for x := c.base.X >> 6; x <= (c.base.X+coords.SceneSize-1)>>6; x++ {
			for y := c.base.Y >> 6; y <= (c.base.Y+coords.SceneSize-1)>>6; y++ {
				seen[x<<8|y] = true
			}
		}
	}

	regions := make([]int, 0, len(seen))
	for id := range seen {
		regions = append(regions, id)
	}
	sort.Ints(regions)
	return regions
}

// TileAt 返回场景格子对应的模板世界坐标（用于取地形）
func (c *SimClient) TileAt(sceneX, sceneY int) (coords.WorldPoint, bool) {
	lp := coords.LocalPoint{
		X: sceneX<<coords.LocalCoordBits + coords.LocalTileSize/2,
		Y: sceneY<<coords.LocalCoordBits + coords.LocalTileSize/2,
	}
	return coords.FromLocalInstance(c, lp)
}

// Move 玩家移动一格
//
// 返回：
//   - moved: 是否移动成功
//   - sceneChanged: 是否重新加载了场景
func (c *SimClient) Move(dx, dy int) (moved, sceneChanged bool) {
	target := coords.WorldPoint{X: c.player.X + dx, Y: c.player.Y + dy, Plane: c.player.Plane}
	if !c.walkable(target) {
		return false, false
	}
	c.player = target

	if c.instanced {
		return true, false
	}
	lx, ly := c.player.X-c.base.X, c.player.Y-c.base.Y
	if lx < sceneEdge || ly < sceneEdge || lx >= coords.SceneSize-sceneEdge || ly >= coords.SceneSize-sceneEdge {
		c.recenter()
		return true, true
	}
	return true, false
}

// ChangePlane 切换楼层 (0-3)
//
// 返回：
//   - bool: 楼层是否改变
func (c *SimClient) ChangePlane(delta int) bool {
	plane := c.player.Plane + delta
	if plane < 0 || plane >= coords.InstancePlanes {
		return false
	}
	c.player.Plane = plane
	return true
}

// ToggleInstance 进入或离开副本
//
// 进入时把当前场景的全部区块按同一旋转拼成副本，每次进入旋转量加一
//
// 返回：
//   - bool: 切换后是否在副本中
func (c *SimClient) ToggleInstance() bool {
	if c.instanced {
		c.instanced = false
		c.chunks = nil
		c.player = c.returnPoint
		c.recenter()
		return false
	}

	c.returnPoint = c.player
	c.instanceRotation = (c.instanceRotation + 1) % 4
	r := c.instanceRotation

	originX, originY := c.base.X/coords.ChunkSize, c.base.Y/coords.ChunkSize
	chunks := make([][][]int, coords.InstancePlanes)
	for z := range chunks {
		chunks[z] = make([][]int, coords.InstanceChunks)
		for x := range chunks[z] {
			chunks[z][x] = make([]int, coords.InstanceChunks)
			for y := range chunks[z][x] {
				// 场景区块 (x, y) 显示模板中逆旋转位置的区块
				tx, ty := rotateGrid(x, y, coords.InstanceChunks, 4-r)
				chunks[z][x][y] = coords.PackTemplateChunk(originX+tx, originY+ty, z, r)
			}
		}
	}

	lx, ly := rotateGrid(c.player.X-c.base.X, c.player.Y-c.base.Y, coords.SceneSize, r)
	c.instanced = true
	c.chunks = chunks
	c.base = instanceBase
	c.player = coords.WorldPoint{X: instanceBase.X + lx, Y: instanceBase.Y + ly, Plane: c.player.Plane}
	return true
}

// InstanceRotation 当前副本的旋转量
func (c *SimClient) InstanceRotation() int {
	return c.instanceRotation
}

func (c *SimClient) walkable(wp coords.WorldPoint) bool {
	if !c.instanced {
		return Walkable(wp)
	}
	lx, ly := wp.X-c.base.X, wp.Y-c.base.Y
	if lx < 0 || ly < 0 || lx >= coords.SceneSize || ly >= coords.SceneSize {
		return false
	}
	template, ok := c.TileAt(lx, ly)
	return ok && Walkable(template)
}

// recenter 以玩家所在区块为中心重新加载场景
func (c *SimClient) recenter() {
	c.base = coords.WorldPoint{
		X: (c.player.X/coords.ChunkSize - sceneCenterChunks) * coords.ChunkSize,
		Y: (c.player.Y/coords.ChunkSize - sceneCenterChunks) * coords.ChunkSize,
	}
}

// rotateGrid 在 n x n 网格内顺时针旋转 rotation 次
func rotateGrid(x, y, n, rotation int) (int, int) {
	switch rotation & 0x3 {
	case 1:
		return y, n - 1 - x
	case 2:
		return n - 1 - x, n - 1 - y
	case 3:
		return n - 1 - y, x
	}
	return x, y
}

// templateScene 只包含一个区块的副本场景，用于解包模板区块坐标
type templateScene struct {
	data int
}

func (s templateScene) BaseX() int                { return 0 }
func (s templateScene) BaseY() int                { return 0 }
func (s templateScene) Plane() int                { return 0 }
func (s templateScene) IsInInstancedRegion() bool { return true }
func (s templateScene) InstanceTemplateChunks() [][][]int {
	return [][][]int{{{s.data}}}
}

var _ host.Client = (*SimClient)(nil)
