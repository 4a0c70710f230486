// Package utils 提供演示宿主的输入与网格换算工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/brushmarkers/pkg/host"
)

// PointerState 存储当前帧的指针状态
// 用于统一处理鼠标和触摸输入
type PointerState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 指针位置
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
	// 指针是否在屏幕上（桌面端鼠标总是在，移动端只有触摸时才在）
	Present bool
}

// GetPointerState 获取当前帧的指针状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func GetPointerState() PointerState {
	state := PointerState{}

	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		state.Present = true
		return state
	}

	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		state.Present = true
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.Present = !IsMobile()
	return state
}

// keyBindings ebiten 物理按键到插件按键的映射
// 左右修饰键映射到同一个插件按键
var keyBindings = map[ebiten.Key]host.Key{
	ebiten.KeyShiftLeft:    host.KeyShift,
	ebiten.KeyShiftRight:   host.KeyShift,
	ebiten.KeyControlLeft:  host.KeyControl,
	ebiten.KeyControlRight: host.KeyControl,
	ebiten.KeyAltLeft:      host.KeyAlt,
	ebiten.KeyAltRight:     host.KeyAlt,
	ebiten.KeyTab:          host.KeyTab,
	ebiten.KeySpace:        host.KeySpace,
	ebiten.KeyBackquote:    host.KeyBackquote,
	ebiten.KeyC:            host.KeyC,
	ebiten.KeyQ:            host.KeyQ,
	ebiten.KeyE:            host.KeyE,
}

// virtualKeys 插件按键对应的 ebiten 虚拟按键（任意一侧按住即为按住）
var virtualKeys = map[host.Key]ebiten.Key{
	host.KeyShift:   ebiten.KeyShift,
	host.KeyControl: ebiten.KeyControl,
	host.KeyAlt:     ebiten.KeyAlt,
}

// MapKey 将 ebiten 按键映射为插件按键
//
// 返回：
//   - host.Key: 插件按键
//   - bool: 插件不关心该按键时为 false
func MapKey(key ebiten.Key) (host.Key, bool) {
	k, ok := keyBindings[key]
	return k, ok
}

// KeyEvents 本帧的按键事件
type KeyEvents struct {
	Down []host.Key
	Up   []host.Key
}

// PollKeyEvents 收集本帧刚按下和刚释放的插件按键
//
// 一侧修饰键释放而另一侧仍按住时不产生 Up 事件
func PollKeyEvents() KeyEvents {
	var events KeyEvents

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if k, ok := MapKey(key); ok {
			events.Down = append(events.Down, k)
		}
	}

	for _, key := range inpututil.AppendJustReleasedKeys(nil) {
		k, ok := MapKey(key)
		if !ok {
			continue
		}
		if vk, isModifier := virtualKeys[k]; isModifier && ebiten.IsKeyPressed(vk) {
			continue
		}
		events.Up = append(events.Up, k)
	}

	return events
}
