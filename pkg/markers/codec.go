package markers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RecordVersion 当前写入的区域记录版本
//
// 版本 0：旧插件写入的裸数组，颜色为 {"value": ARGB} 或缺省
// 版本 1：{"version":1,"points":[...]}，颜色为 {"r","g","b","a"}
const RecordVersion = 1

// ErrUnsupportedVersion 记录版本高于当前支持的版本
var ErrUnsupportedVersion = errors.New("unsupported record version")

const recordSchemaURL = "brushmarkers://region-record.schema.json"

const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "channel": {"type": "integer", "minimum": 0, "maximum": 255},
    "rgba": {
      "type": "object",
      "required": ["r", "g", "b", "a"],
      "properties": {
        "r": {"$ref": "#/definitions/channel"},
        "g": {"$ref": "#/definitions/channel"},
        "b": {"$ref": "#/definitions/channel"},
        "a": {"$ref": "#/definitions/channel"}
      }
    },
    "argb": {
      "type": "object",
      "required": ["value"],
      "properties": {"value": {"type": "integer"}}
    },
    "point": {
      "type": "object",
      "required": ["regionId", "regionX", "regionY", "z"],
      "properties": {
        "regionId": {"type": "integer", "minimum": 0, "maximum": 65535},
        "regionX": {"type": "integer", "minimum": 0, "maximum": 63},
        "regionY": {"type": "integer", "minimum": 0, "maximum": 63},
        "z": {"type": "integer", "minimum": 0, "maximum": 3},
        "color": {"anyOf": [{"$ref": "#/definitions/rgba"}, {"$ref": "#/definitions/argb"}, {"type": "null"}]}
      }
    }
  },
  "oneOf": [
    {"type": "array", "items": {"$ref": "#/definitions/point"}},
    {
      "type": "object",
      "required": ["version", "points"],
      "properties": {
        "version": {"type": "integer", "minimum": 1},
        "points": {"type": "array", "items": {"$ref": "#/definitions/point"}}
      }
    }
  ]
}`

var compiledRecordSchema = jsonschema.MustCompileString(recordSchemaURL, recordSchema)

// recordColor 记录中的颜色，兼容两种写法
type recordColor struct {
	R     *int   `json:"r,omitempty"`
	G     *int   `json:"g,omitempty"`
	B     *int   `json:"b,omitempty"`
	A     *int   `json:"a,omitempty"`
	Value *int64 `json:"value,omitempty"` // 旧版 ARGB 整数
}

type recordPoint struct {
	RegionID int          `json:"regionId"`
	RegionX  int          `json:"regionX"`
	RegionY  int          `json:"regionY"`
	Z        int          `json:"z"`
	Color    *recordColor `json:"color,omitempty"`
}

type regionRecord struct {
	Version int           `json:"version"`
	Points  []recordPoint `json:"points"`
}

// EncodeRegion 将一个区域的标记编码为当前版本的记录
func EncodeRegion(marks []Mark) (string, error) {
	rec := regionRecord{
		Version: RecordVersion,
		Points:  make([]recordPoint, 0, len(marks)),
	}
	for _, m := range marks {
		p := recordPoint{RegionID: m.RegionID, RegionX: m.RegionX, RegionY: m.RegionY, Z: m.Plane}
		if m.Color != nil {
			r, g, b, a := int(m.Color.R), int(m.Color.G), int(m.Color.B), int(m.Color.A)
			p.Color = &recordColor{R: &r, G: &g, B: &b, A: &a}
		}
		rec.Points = append(rec.Points, p)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal region record: %w", err)
	}
	return string(data), nil
}

// DecodeRegion 解码区域记录（支持版本 0 和版本 1）
//
// 返回：
//   - []Mark: 记录中的标记，保持原有顺序
//   - error: 格式不符合 schema、版本不支持或 JSON 无法解析时返回错误
func DecodeRegion(s string) ([]Mark, error) {
	raw := bytes.TrimSpace([]byte(s))
	if len(raw) == 0 {
		return nil, nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse region record: %w", err)
	}
	if err := compiledRecordSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid region record: %w", err)
	}

	var points []recordPoint
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &points); err != nil {
			return nil, fmt.Errorf("failed to unmarshal legacy record: %w", err)
		}
	} else {
		var rec regionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal region record: %w", err)
		}
		if rec.Version > RecordVersion {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
		}
		points = rec.Points
	}

	marks := make([]Mark, 0, len(points))
	for _, p := range points {
		marks = append(marks, Mark{
			RegionID: p.RegionID,
			RegionX:  p.RegionX,
			RegionY:  p.RegionY,
			Plane:    p.Z,
			Color:    p.Color.toRGBA(),
		})
	}
	return marks, nil
}

func (c *recordColor) toRGBA() *color.RGBA {
	if c == nil {
		return nil
	}
	if c.Value != nil {
		v := uint32(*c.Value)
		return &color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
	}
	if c.R == nil || c.G == nil || c.B == nil || c.A == nil {
		return nil
	}
	return &color.RGBA{R: uint8(*c.R), G: uint8(*c.G), B: uint8(*c.B), A: uint8(*c.A)}
}
