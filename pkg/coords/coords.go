// Package coords 提供地图坐标换算
//
// # 坐标系统概述
//
//   - **世界坐标** (WorldPoint)：以格子为单位的绝对坐标，带有楼层 Plane
//   - **区域坐标**：RegionID + 区域内偏移 (0-63)，用于持久化
//   - **本地坐标** (LocalPoint)：相对于当前已加载场景左下角，单位为 1/128 格
//   - **副本坐标**：副本（Instance）由若干 8x8 模板区块拼接并旋转而成，
//     一个模板格子在副本中可能出现零次或多次
//
// 所有函数都是无状态的纯计算，场景信息通过 Scene 接口由宿主提供。
package coords

// 坐标常量
const (
	RegionSize     = 64  // 区域边长（格）
	ChunkSize      = 8   // 区块边长（格）
	SceneSize      = 104 // 已加载场景边长（格）
	LocalCoordBits = 7   // 本地坐标每格 1<<7 个单位
	LocalTileSize  = 1 << LocalCoordBits

	// 副本模板区块网格：4 层 x 13 x 13 区块
	InstancePlanes = 4
	InstanceChunks = SceneSize / ChunkSize
)

// Scene 宿主提供的当前场景信息
type Scene interface {
	// BaseX/BaseY 当前场景左下角的世界坐标
	BaseX() int
	BaseY() int
	// Plane 玩家所在楼层
	Plane() int
	// IsInInstancedRegion 是否处于副本中
	IsInInstancedRegion() bool
	// InstanceTemplateChunks 副本模板区块数据，索引为 [plane][chunkX][chunkY]
	InstanceTemplateChunks() [][][]int
}

// WorldPoint 世界坐标（格）
type WorldPoint struct {
	X, Y  int
	Plane int
}

// LocalPoint 本地坐标（1/128 格）
type LocalPoint struct {
	X, Y int
}

// SceneX 返回本地坐标所在的场景格 X
func (lp LocalPoint) SceneX() int { return lp.X >> LocalCoordBits }

// SceneY 返回本地坐标所在的场景格 Y
func (lp LocalPoint) SceneY() int { return lp.Y >> LocalCoordBits }

// RegionID 返回所在区域 ID
func (wp WorldPoint) RegionID() int {
	return (wp.X>>6)<<8 | (wp.Y >> 6)
}

// RegionX 返回区域内 X 偏移 (0-63)
func (wp WorldPoint) RegionX() int { return wp.X & (RegionSize - 1) }

// RegionY 返回区域内 Y 偏移 (0-63)
func (wp WorldPoint) RegionY() int { return wp.Y & (RegionSize - 1) }

// FromRegion 将区域坐标还原为世界坐标
//
// 参数：
//   - regionID: 区域 ID（高 8 位为区域 X，低 8 位为区域 Y）
//   - regionX, regionY: 区域内偏移
//   - plane: 楼层
func FromRegion(regionID, regionX, regionY, plane int) WorldPoint {
	return WorldPoint{
		X:     ((regionID >> 8) << 6) + regionX,
		Y:     ((regionID & 0xFF) << 6) + regionY,
		Plane: plane,
	}
}

// IsInScene 判断世界坐标是否落在当前已加载场景内（不检查楼层）
func (wp WorldPoint) IsInScene(scene Scene) bool {
	if scene == nil {
		return false
	}
	baseX, baseY := scene.BaseX(), scene.BaseY()
	return wp.X >= baseX && wp.X < baseX+SceneSize &&
		wp.Y >= baseY && wp.Y < baseY+SceneSize
}

// DistanceTo 返回两点的切比雪夫距离，楼层不同时返回最大整数
func (wp WorldPoint) DistanceTo(other WorldPoint) int {
	if wp.Plane != other.Plane {
		return int(^uint(0) >> 1)
	}
	return max(abs(wp.X-other.X), abs(wp.Y-other.Y))
}

// FromLocal 将本地坐标转换为世界坐标
func FromLocal(scene Scene, lp LocalPoint, plane int) WorldPoint {
	return WorldPoint{
		X:     lp.SceneX() + scene.BaseX(),
		Y:     lp.SceneY() + scene.BaseY(),
		Plane: plane,
	}
}

// FromWorld 将世界坐标转换为格子中心的本地坐标
//
// 返回：
//   - LocalPoint: 格子中心的本地坐标
//   - bool: 坐标不在当前楼层或不在场景内时为 false
func FromWorld(scene Scene, wp WorldPoint) (LocalPoint, bool) {
	if scene == nil || wp.Plane != scene.Plane() || !wp.IsInScene(scene) {
		return LocalPoint{}, false
	}
	return LocalPoint{
		X: (wp.X-scene.BaseX())<<LocalCoordBits + LocalTileSize/2,
		Y: (wp.Y-scene.BaseY())<<LocalCoordBits + LocalTileSize/2,
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
