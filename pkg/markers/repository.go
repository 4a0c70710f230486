package markers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/storage"
)

// 存储路径常量
const (
	ConfigGroup  = "brushMarkers"
	RegionPrefix = "region_"
)

// RegionKey 返回区域记录的 key
func RegionKey(regionID int) string {
	return RegionPrefix + strconv.Itoa(regionID)
}

// Repository 区域标记的持久化适配器
//
// 每个区域一条记录，保存时整体替换；空列表直接删除 key，不保存空占位。
type Repository struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewRepository 创建持久化适配器
func NewRepository(store storage.Store, logger zerolog.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger.With().Str("component", "Repository").Logger(),
	}
}

// Save 保存一个区域的全部标记
//
// 参数：
//   - regionID: 区域 ID
//   - marks: 区域内全部标记，为空时删除该区域的记录
func (r *Repository) Save(regionID int, marks []Mark) error {
	key := RegionKey(regionID)
	if len(marks) == 0 {
		if err := r.store.Unset(ConfigGroup, key); err != nil {
			return fmt.Errorf("failed to unset region %d: %w", regionID, err)
		}
		return nil
	}

	value, err := EncodeRegion(marks)
	if err != nil {
		return err
	}
	if err := r.store.Set(ConfigGroup, key, value); err != nil {
		return fmt.Errorf("failed to save region %d: %w", regionID, err)
	}
	return nil
}

// Load 读取一个区域的标记
//
// key 不存在、值为空、读取失败或无法解析时都返回空列表，不视为错误。
func (r *Repository) Load(regionID int) []Mark {
	marks, err := r.Read(regionID)
	if err != nil {
		r.logger.Debug().Err(err).Int("region", regionID).Msg("Ignoring unreadable region record")
		return nil
	}
	return marks
}

// Read 读取一个区域的标记，读取或解析失败时返回错误
//
// key 不存在或值为空时返回 nil, nil。
func (r *Repository) Read(regionID int) ([]Mark, error) {
	value, err := r.store.Get(ConfigGroup, RegionKey(regionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read region %d: %w", regionID, err)
	}
	if value == "" {
		return nil, nil
	}
	return DecodeRegion(value)
}

// Regions 列出存在记录的区域 ID（升序）
func (r *Repository) Regions() ([]int, error) {
	keys, err := r.store.Keys(ConfigGroup)
	if err != nil {
		return nil, err
	}

	regions := make([]int, 0, len(keys))
	for _, k := range keys {
		if !strings.HasPrefix(k, RegionPrefix) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(k, RegionPrefix))
		if err != nil {
			continue
		}
		regions = append(regions, id)
	}
	sort.Ints(regions)
	return regions, nil
}
