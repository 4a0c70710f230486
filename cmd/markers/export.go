package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/decker502/brushmarkers/pkg/markers"
)

// exportVersion 导出文档格式版本
const exportVersion = 1

// exportDocument 导出文件
// 每个区域保存原始记录（与插件存储中的格式相同）
type exportDocument struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Regions    []exportRegion `json:"regions"`
}

type exportRegion struct {
	RegionID int             `json:"regionId"`
	Record   json.RawMessage `json:"record"`
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zst")
}

// exportRegions 把所有区域写入 path，后缀为 .zst 时使用 zstd 压缩
//
// 任何一条记录无法解析时不创建文件
//
// 返回：
//   - int: 导出的区域数
//   - error: 读取、解析或写入失败
func exportRegions(repo *markers.Repository, path string, now time.Time) (int, error) {
	ids, err := repo.Regions()
	if err != nil {
		return 0, err
	}

	doc := exportDocument{Version: exportVersion, ExportedAt: now.UTC()}
	for _, id := range ids {
		marks, err := repo.Read(id)
		if err != nil {
			return 0, fmt.Errorf("region %d: %w", id, err)
		}
		if len(marks) == 0 {
			continue
		}
		record, err := markers.EncodeRegion(marks)
		if err != nil {
			return 0, fmt.Errorf("region %d: %w", id, err)
		}
		doc.Regions = append(doc.Regions, exportRegion{RegionID: id, Record: json.RawMessage(record)})
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var w io.Writer = f
	var enc *zstd.Encoder
	if isCompressed(path) {
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return 0, err
		}
		w = enc
	}

	je := json.NewEncoder(w)
	je.SetIndent("", "  ")
	if err := je.Encode(&doc); err != nil {
		if enc != nil {
			enc.Close()
		}
		return 0, fmt.Errorf("encode export: %w", err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("zstd close: %w", err)
		}
	}
	return len(doc.Regions), f.Close()
}

// importRegions 读取导出文件并整体替换其中列出的区域
//
// 所有记录先全部校验，任何一条无法解析时不写入任何区域
func importRegions(repo *markers.Repository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return 0, err
		}
		defer dec.Close()
		r = dec
	}

	var doc exportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode export: %w", err)
	}
	if doc.Version != exportVersion {
		return 0, fmt.Errorf("%w: export version %d", markers.ErrUnsupportedVersion, doc.Version)
	}

	decoded := make(map[int][]markers.Mark, len(doc.Regions))
	for _, region := range doc.Regions {
		marks, err := markers.DecodeRegion(string(region.Record))
		if err != nil {
			return 0, fmt.Errorf("region %d: %w", region.RegionID, err)
		}
		decoded[region.RegionID] = marks
	}

	ids := make([]int, 0, len(decoded))
	for id := range decoded {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if err := repo.Save(id, decoded[id]); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
