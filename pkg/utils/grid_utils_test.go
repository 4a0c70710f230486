package utils

import (
	"testing"

	"github.com/decker502/brushmarkers/pkg/coords"
)

// TestMouseToSceneTile 测试鼠标坐标到场景格子的转换
func TestMouseToSceneTile(t *testing.T) {
	camera := SceneTileCenter(52, 52)

	tests := []struct {
		name           string
		mouseX, mouseY int
		wantX, wantY   int
		wantValid      bool
	}{
		{"屏幕中心", int(ScreenCenterX), int(ScreenCenterY), 52, 52, true},
		{"右边一格", int(ScreenCenterX) + 32, int(ScreenCenterY), 53, 52, true},
		{"上边一格", int(ScreenCenterX), int(ScreenCenterY) - 32, 52, 53, true},
		{"左下格子内", int(ScreenCenterX) - 20, int(ScreenCenterY) + 20, 51, 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, valid := MouseToSceneTile(tt.mouseX, tt.mouseY, camera)
			if valid != tt.wantValid {
				t.Fatalf("valid = %v, want %v", valid, tt.wantValid)
			}
			if lp.SceneX() != tt.wantX || lp.SceneY() != tt.wantY {
				t.Errorf("tile = (%d, %d), want (%d, %d)", lp.SceneX(), lp.SceneY(), tt.wantX, tt.wantY)
			}
			if lp != SceneTileCenter(tt.wantX, tt.wantY) {
				t.Errorf("lp = %+v, want tile center", lp)
			}
		})
	}
}

// TestMouseOutsideScene 场景边缘外的鼠标位置无效
func TestMouseOutsideScene(t *testing.T) {
	// 摄像机在场景左下角格子，屏幕左侧和下方都在场景外
	camera := SceneTileCenter(0, 0)
	if _, valid := MouseToSceneTile(0, int(ScreenCenterY), camera); valid {
		t.Error("left of scene should be invalid")
	}
	if _, valid := MouseToSceneTile(int(ScreenCenterX), int(ScreenCenterY)+100, camera); valid {
		t.Error("below scene should be invalid")
	}

	camera = SceneTileCenter(coords.SceneSize-1, coords.SceneSize-1)
	if _, valid := MouseToSceneTile(int(ScreenCenterX)+64, int(ScreenCenterY), camera); valid {
		t.Error("right of scene should be invalid")
	}
}

// TestSceneTileToScreen 格子左上角与鼠标换算互逆
func TestSceneTileToScreen(t *testing.T) {
	camera := SceneTileCenter(52, 52)
	x, y := SceneTileToScreen(52, 52, camera)
	if x != ScreenCenterX-16 || y != ScreenCenterY-16 {
		t.Errorf("top-left = (%.1f, %.1f), want (%.1f, %.1f)", x, y, ScreenCenterX-16, ScreenCenterY-16)
	}

	lp, valid := MouseToSceneTile(int(x)+1, int(y)+1, camera)
	if !valid || lp.SceneX() != 52 || lp.SceneY() != 52 {
		t.Errorf("inside top-left corner resolves to (%d, %d)", lp.SceneX(), lp.SceneY())
	}
}

// TestVisibleSceneTiles 可见范围覆盖整个窗口并裁剪到场景内
func TestVisibleSceneTiles(t *testing.T) {
	minX, minY, maxX, maxY := VisibleSceneTiles(SceneTileCenter(52, 52))
	// 960x640 窗口每格 32 像素：水平 30 格、垂直 20 格
	if minX != 37 || maxX != 67 {
		t.Errorf("x range = [%d, %d], want [37, 67]", minX, maxX)
	}
	if minY != 42 || maxY != 62 {
		t.Errorf("y range = [%d, %d], want [42, 62]", minY, maxY)
	}

	minX, minY, _, _ = VisibleSceneTiles(SceneTileCenter(0, 0))
	if minX != 0 || minY != 0 {
		t.Errorf("clamped min = (%d, %d), want (0, 0)", minX, minY)
	}
}
