package markers

import (
	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/coords"
)

// Scene 标记集合读取的宿主场景：副本展开所需的坐标信息和当前加载的区域
type Scene interface {
	coords.Scene
	// MapRegions 当前已加载的区域 ID 列表
	MapRegions() []int
}

// Store 当前可见的标记集合
//
// 内存中的标记列表始终等于：当前所有相关区域的持久化标记，经副本展开后的并集。
// 任何修改都会立即持久化并整体重新加载，不做增量同步。
// 只在宿主的事件线程上使用，不加锁。
type Store struct {
	repo    *Repository
	scene  Scene
	logger zerolog.Logger
	points []ColorTileMarker
}

// NewStore 创建标记集合
//
// 参数：
//   - repo: 持久化适配器
//   - scene: 宿主场景，用于副本展开和读取当前区域
//   - logger: 日志
func NewStore(repo *Repository, scene Scene, logger zerolog.Logger) *Store {
	return &Store{
		repo:   repo,
		scene:  scene,
		logger: logger.With().Str("component", "MarkStore").Logger(),
	}
}

// Reload 清空并按给定区域重新加载全部标记
//
// 区域顺序不影响最终得到的标记集合。regionIDs 为 nil 时结果为空。
func (s *Store) Reload(regionIDs []int) {
	s.points = s.points[:0]

	for _, regionID := range regionIDs {
		s.logger.Debug().Int("region", regionID).Msg("Loading points for region")
		s.points = append(s.points, s.expand(s.repo.Load(regionID))...)
	}
}

// expand 将区域标记展开为副本中的渲染标记
func (s *Store) expand(marks []Mark) []ColorTileMarker {
	var result []ColorTileMarker
	for _, m := range marks {
		for _, wp := range coords.ToLocalInstance(s.scene, m.WorldPoint()) {
			result = append(result, ColorTileMarker{Point: wp, Color: m.Color})
		}
	}
	return result
}

// reload 按场景当前的区域集合重新加载
func (s *Store) reload() {
	if s.scene == nil {
		s.Reload(nil)
		return
	}
	s.Reload(s.scene.MapRegions())
}

// Toggle 切换格子标记：已存在则删除（忽略颜色），否则添加
//
// 返回：
//   - bool: true 表示添加，false 表示删除
//   - error: 持久化失败时返回错误（内存集合仍会重新加载）
func (s *Store) Toggle(m Mark) (bool, error) {
	marks := s.repo.Load(m.RegionID)
	added := false
	if i := indexOf(marks, m); i >= 0 {
		marks = append(marks[:i], marks[i+1:]...)
	} else {
		marks = append(marks, m)
		added = true
	}
	s.logger.Debug().Stringer("mark", m).Bool("added", added).Msg("Updating point")
	return added, s.commit(m.RegionID, marks)
}

// Add 添加标记（已存在时不重复添加），并无条件保存和重新加载
func (s *Store) Add(m Mark) error {
	marks := s.repo.Load(m.RegionID)
	if indexOf(marks, m) < 0 {
		marks = append(marks, m)
	}
	return s.commit(m.RegionID, marks)
}

// Remove 删除标记（不存在时不做改动），并无条件保存和重新加载
func (s *Store) Remove(m Mark) error {
	marks := s.repo.Load(m.RegionID)
	if i := indexOf(marks, m); i >= 0 {
		marks = append(marks[:i], marks[i+1:]...)
	}
	return s.commit(m.RegionID, marks)
}

// ClearRegion 删除一个区域的全部标记
func (s *Store) ClearRegion(regionID int) error {
	return s.commit(regionID, nil)
}

func (s *Store) commit(regionID int, marks []Mark) error {
	err := s.repo.Save(regionID, marks)
	s.reload()
	return err
}

// Contains 判断区域记录中是否已有该格子的标记
func (s *Store) Contains(m Mark) bool {
	return indexOf(s.repo.Load(m.RegionID), m) >= 0
}

// Points 返回当前标记的快照（供渲染使用）
func (s *Store) Points() []ColorTileMarker {
	out := make([]ColorTileMarker, len(s.points))
	copy(out, s.points)
	return out
}

// Len 当前标记数量
func (s *Store) Len() int {
	return len(s.points)
}

// Clear 清空内存集合（插件关闭时调用），不影响持久化数据
func (s *Store) Clear() {
	s.points = nil
}
