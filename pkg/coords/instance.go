package coords

// templateChunk 副本模板区块的解包结果
//
// 打包格式（与宿主一致）：
//
//	bit 1-2   旋转（顺时针 90° 的次数）
//	bit 3-13  模板区块 Y
//	bit 14-23 模板区块 X
//	bit 24-25 模板楼层
type templateChunk struct {
	rotation int
	x, y     int // 模板区块左下角世界坐标（格）
	plane    int
}

func unpackTemplateChunk(data int) templateChunk {
	return templateChunk{
		rotation: data >> 1 & 0x3,
		y:        (data >> 3 & 0x7FF) * ChunkSize,
		x:        (data >> 14 & 0x3FF) * ChunkSize,
		plane:    data >> 24 & 0x3,
	}
}

// PackTemplateChunk 打包模板区块数据，是 unpackTemplateChunk 的逆运算
//
// 参数：
//   - chunkX, chunkY: 模板区块坐标（以区块为单位，即世界坐标 / 8）
//   - plane: 模板楼层
//   - rotation: 旋转次数 (0-3)
func PackTemplateChunk(chunkX, chunkY, plane, rotation int) int {
	return (plane&0x3)<<24 | (chunkX&0x3FF)<<14 | (chunkY&0x7FF)<<3 | (rotation&0x3)<<1
}

func (c templateChunk) contains(wp WorldPoint) bool {
	return wp.X >= c.x && wp.X < c.x+ChunkSize &&
		wp.Y >= c.y && wp.Y < c.y+ChunkSize
}

// rotate 在所在 8x8 区块内将格子顺时针旋转 rotation 次
func rotate(wp WorldPoint, rotation int) WorldPoint {
	chunkX := wp.X &^ (ChunkSize - 1)
	chunkY := wp.Y &^ (ChunkSize - 1)
	x := wp.X & (ChunkSize - 1)
	y := wp.Y & (ChunkSize - 1)

	switch rotation & 0x3 {
	case 1:
		return WorldPoint{X: chunkX + y, Y: chunkY + (ChunkSize - 1 - x), Plane: wp.Plane}
	case 2:
		return WorldPoint{X: chunkX + (ChunkSize - 1 - x), Y: chunkY + (ChunkSize - 1 - y), Plane: wp.Plane}
	case 3:
		return WorldPoint{X: chunkX + (ChunkSize - 1 - y), Y: chunkY + x, Plane: wp.Plane}
	}
	return wp
}

// ToLocalInstance 将模板世界坐标展开为当前副本中的所有副本坐标
//
// 不在副本中时原样返回单个坐标。在副本中时，只扫描 wp.Plane 层的模板区块，
// 按模板区块的 X/Y 匹配（不比较模板楼层），结果保留 wp.Plane。每个包含该坐标的
// 模板区块都会产生一个结果（区块可能被复用多次），因此结果可能为零个或多个。
//
// 参数：
//   - scene: 宿主场景，为 nil 时返回 nil
//   - wp: 模板世界坐标，楼层为副本楼层
//
// 返回：
//   - []WorldPoint: 副本中的世界坐标
func ToLocalInstance(scene Scene, wp WorldPoint) []WorldPoint {
	if scene == nil {
		return nil
	}
	if !scene.IsInInstancedRegion() {
		return []WorldPoint{wp}
	}

	chunks := scene.InstanceTemplateChunks()
	if wp.Plane < 0 || wp.Plane >= len(chunks) {
		return nil
	}

	var result []WorldPoint
	for x := range chunks[wp.Plane] {
		for y, data := range chunks[wp.Plane][x] {
			c := unpackTemplateChunk(data)
			if !c.contains(wp) {
				continue
			}
			p := WorldPoint{
				X:     scene.BaseX() + x*ChunkSize + (wp.X & (ChunkSize - 1)),
				Y:     scene.BaseY() + y*ChunkSize + (wp.Y & (ChunkSize - 1)),
				Plane: wp.Plane,
			}
			result = append(result, rotate(p, c.rotation))
		}
	}
	return result
}

// FromLocalInstance 将本地坐标还原为模板世界坐标
//
// 副本中的格子会折叠回其模板格子（撤销区块旋转），持久化时使用该结果。
//
// 返回：
//   - WorldPoint: 模板世界坐标
//   - bool: 场景为 nil 或坐标越界时为 false
func FromLocalInstance(scene Scene, lp LocalPoint) (WorldPoint, bool) {
	if scene == nil {
		return WorldPoint{}, false
	}
	plane := scene.Plane()
	if !scene.IsInInstancedRegion() {
		return FromLocal(scene, lp, plane), true
	}

	sceneX, sceneY := lp.SceneX(), lp.SceneY()
	chunkX, chunkY := sceneX/ChunkSize, sceneY/ChunkSize
	chunks := scene.InstanceTemplateChunks()
	if sceneX < 0 || sceneY < 0 ||
		plane < 0 || plane >= len(chunks) ||
		chunkX >= len(chunks[plane]) ||
		chunkY >= len(chunks[plane][chunkX]) {
		return WorldPoint{}, false
	}

	c := unpackTemplateChunk(chunks[plane][chunkX][chunkY])
	p := WorldPoint{
		X:     c.x + (sceneX & (ChunkSize - 1)),
		Y:     c.y + (sceneY & (ChunkSize - 1)),
		Plane: c.plane,
	}
	return rotate(p, 4-c.rotation), true
}

// ToRegionRelative 将本地坐标转换为持久化用的区域坐标
func ToRegionRelative(scene Scene, lp LocalPoint) (regionID, regionX, regionY int, ok bool) {
	wp, ok := FromLocalInstance(scene, lp)
	if !ok {
		return 0, 0, 0, false
	}
	return wp.RegionID(), wp.RegionX(), wp.RegionY(), true
}
