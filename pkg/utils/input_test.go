package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/brushmarkers/pkg/host"
)

// TestMapKey 测试 ebiten 按键映射
func TestMapKey(t *testing.T) {
	tests := []struct {
		key    ebiten.Key
		want   host.Key
		mapped bool
	}{
		{ebiten.KeyShiftLeft, host.KeyShift, true},
		{ebiten.KeyShiftRight, host.KeyShift, true},
		{ebiten.KeyControlLeft, host.KeyControl, true},
		{ebiten.KeyControlRight, host.KeyControl, true},
		{ebiten.KeyTab, host.KeyTab, true},
		{ebiten.KeyBackquote, host.KeyBackquote, true},
		{ebiten.KeyArrowUp, host.KeyUnknown, false},
		{ebiten.KeyF11, host.KeyUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := MapKey(tt.key)
			if ok != tt.mapped || got != tt.want {
				t.Errorf("MapKey(%v) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.mapped)
			}
		})
	}
}

// TestEveryPluginKeyIsBound 每个可配置的插件按键都有对应的物理按键
func TestEveryPluginKeyIsBound(t *testing.T) {
	bound := map[host.Key]bool{}
	for _, k := range keyBindings {
		bound[k] = true
	}
	for _, name := range []string{"Shift", "Control", "Alt", "Tab", "Space", "Backquote", "C", "Q", "E"} {
		k, err := host.ParseKey(name)
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", name, err)
		}
		if !bound[k] {
			t.Errorf("key %v has no ebiten binding", k)
		}
	}
}
