package config

import (
	"testing"
)

// TestGetMinimapBounds 测试小地图边界完全落在窗口内
func TestGetMinimapBounds(t *testing.T) {
	minX, minY, maxX, maxY := GetMinimapBounds()

	if minX < 0 || minY < 0 {
		t.Errorf("minimap bounds start (%.1f, %.1f) outside window", minX, minY)
	}
	if maxX > GameWindowWidth || maxY > GameWindowHeight {
		t.Errorf("minimap bounds end (%.1f, %.1f) outside window %dx%d", maxX, maxY, GameWindowWidth, GameWindowHeight)
	}
	if maxX-minX != 2*MinimapRadius {
		t.Errorf("minimap width = %.1f, want %.1f", maxX-minX, 2*MinimapRadius)
	}
}

// TestClampMinimapZoom 测试缩放限制
func TestClampMinimapZoom(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want float64
	}{
		{"过小", 0.5, MinMinimapZoom},
		{"默认", DefaultMinimapZoom, DefaultMinimapZoom},
		{"过大", 100, MaxMinimapZoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampMinimapZoom(tt.zoom); got != tt.want {
				t.Errorf("ClampMinimapZoom(%.1f) = %.1f, want %.1f", tt.zoom, got, tt.want)
			}
		})
	}
}
