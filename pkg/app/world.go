package app

import (
	"image/color"

	"github.com/decker502/brushmarkers/pkg/coords"
)

// 演示世界：4x4 个区域，左下角为区域 (49, 49)
const (
	WorldMinX = 49 * coords.RegionSize
	WorldMinY = 49 * coords.RegionSize
	WorldMaxX = WorldMinX + 4*coords.RegionSize // 不含
	WorldMaxY = WorldMinY + 4*coords.RegionSize

	// 上层楼层只在部分区块有地板
	upperPlaneFloorEvery = 3
)

// 地形种类
type terrain int

const (
	terrainVoid terrain = iota
	terrainGrass
	terrainDirt
	terrainStone
	terrainWater
)

var terrainColors = map[terrain]color.RGBA{
	terrainVoid:  {R: 8, G: 8, B: 12, A: 255},
	terrainGrass: {R: 74, G: 122, B: 52, A: 255},
	terrainDirt:  {R: 120, G: 94, B: 60, A: 255},
	terrainStone: {R: 110, G: 110, B: 118, A: 255},
	terrainWater: {R: 40, G: 72, B: 140, A: 255},
}

// InWorld 世界坐标是否在演示世界范围内
func InWorld(wp coords.WorldPoint) bool {
	return wp.X >= WorldMinX && wp.X < WorldMaxX && wp.Y >= WorldMinY && wp.Y < WorldMaxY
}

// hash2 确定性的整数哈希，用于生成地形
func hash2(x, y int) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// terrainAt 返回世界坐标处的地形
func terrainAt(wp coords.WorldPoint) terrain {
	if !InWorld(wp) {
		return terrainWater
	}
	if wp.Plane > 0 {
		// 上层楼层按区块决定是否有地板
		if (wp.X/coords.ChunkSize+wp.Y/coords.ChunkSize)%upperPlaneFloorEvery != 0 {
			return terrainVoid
		}
		return terrainStone
	}

	// 以 4x4 格为单位的粗糙噪声，外加少量单格杂点
	coarse := hash2(wp.X>>2, wp.Y>>2) % 16
	switch {
	case coarse == 0:
		return terrainWater
	case coarse < 3:
		return terrainStone
	case coarse < 5:
		return terrainDirt
	}
	if hash2(wp.X, wp.Y)%23 == 0 {
		return terrainDirt
	}
	return terrainGrass
}

// TileColor 返回格子的绘制颜色
// 相邻区域略微改变亮度，便于看出区域边界
func TileColor(wp coords.WorldPoint) color.RGBA {
	c := terrainColors[terrainAt(wp)]
	if !InWorld(wp) || wp.Plane > 0 {
		return c
	}
	if ((wp.X>>6)+(wp.Y>>6))%2 == 1 {
		c.R = uint8(int(c.R) * 9 / 10)
		c.G = uint8(int(c.G) * 9 / 10)
		c.B = uint8(int(c.B) * 9 / 10)
	}
	return c
}

// Walkable 玩家能否站在该格子上（世界外和上层的虚空不可走）
func Walkable(wp coords.WorldPoint) bool {
	return InWorld(wp) && terrainAt(wp) != terrainVoid
}
