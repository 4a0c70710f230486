package host

import (
	"fmt"
	"strings"
)

// Key 插件关心的按键
type Key int

const (
	KeyUnknown Key = iota
	KeyShift
	KeyControl
	KeyAlt
	KeyTab
	KeySpace
	KeyBackquote
	KeyC
	KeyQ
	KeyE
)

var keyNames = map[Key]string{
	KeyShift:     "Shift",
	KeyControl:   "Control",
	KeyAlt:       "Alt",
	KeyTab:       "Tab",
	KeySpace:     "Space",
	KeyBackquote: "Backquote",
	KeyC:         "C",
	KeyQ:         "Q",
	KeyE:         "E",
}

// String 返回按键名称
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey 按名称解析按键（不区分大小写，支持 Ctrl 作为 Control 的别名）
//
// 返回：
//   - Key: 解析出的按键
//   - error: 名称未知时返回错误
func ParseKey(name string) (Key, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "ctrl") {
		return KeyControl, nil
	}
	for k, v := range keyNames {
		if strings.EqualFold(v, n) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}
