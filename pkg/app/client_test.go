package app

import (
	"testing"

	"github.com/decker502/brushmarkers/pkg/coords"
)

func containsRegion(regions []int, id int) bool {
	for _, r := range regions {
		if r == id {
			return true
		}
	}
	return false
}

// TestNewSimClientScene 场景以玩家所在区块为中心加载
func TestNewSimClientScene(t *testing.T) {
	c := NewSimClient(DefaultStart)

	if c.BaseX() != 3168 || c.BaseY() != 3168 {
		t.Fatalf("base = (%d, %d), want (3168, 3168)", c.BaseX(), c.BaseY())
	}
	lp := c.PlayerLocal()
	if lp.SceneX() != 54 || lp.SceneY() != 50 {
		t.Errorf("player scene tile = (%d, %d), want (54, 50)", lp.SceneX(), lp.SceneY())
	}

	regions := c.MapRegions()
	if len(regions) != 9 {
		t.Errorf("MapRegions() = %v, want 9 regions", regions)
	}
	if !containsRegion(regions, DefaultStart.RegionID()) {
		t.Errorf("MapRegions() = %v, missing %d", regions, DefaultStart.RegionID())
	}
}

// TestMoveRecentersScene 接近场景边缘时重新加载
func TestMoveRecentersScene(t *testing.T) {
	c := NewSimClient(DefaultStart)

	steps := 0
	for {
		moved, changed := c.Move(1, 0)
		if !moved {
			t.Fatalf("move blocked after %d steps", steps)
		}
		steps++
		if changed {
			break
		}
		if steps > coords.SceneSize {
			t.Fatal("scene never reloaded")
		}
	}

	// 本地 X 从 54 走到 88
	if steps != 34 {
		t.Errorf("steps = %d, want 34", steps)
	}
	if c.BaseX() != 3208 {
		t.Errorf("BaseX() = %d, want 3208", c.BaseX())
	}
	if lp := c.PlayerLocal(); lp.SceneX() < sceneEdge || lp.SceneX() >= coords.SceneSize-sceneEdge {
		t.Errorf("player scene X = %d after recenter", lp.SceneX())
	}
}

// TestMoveBlockedAtWorldEdge 世界边缘外不可走
func TestMoveBlockedAtWorldEdge(t *testing.T) {
	c := NewSimClient(coords.WorldPoint{X: WorldMinX, Y: 3218})
	if moved, _ := c.Move(-1, 0); moved {
		t.Error("moved outside the world")
	}
	if p, _ := c.PlayerLocation(); p.X != WorldMinX {
		t.Errorf("player X = %d, want %d", p.X, WorldMinX)
	}
}

// TestChangePlane 楼层限制在 0-3
func TestChangePlane(t *testing.T) {
	c := NewSimClient(DefaultStart)
	if c.ChangePlane(-1) {
		t.Error("ChangePlane(-1) from plane 0 should fail")
	}
	for i := 1; i < coords.InstancePlanes; i++ {
		if !c.ChangePlane(1) {
			t.Fatalf("ChangePlane(1) to plane %d failed", i)
		}
	}
	if c.ChangePlane(1) {
		t.Error("ChangePlane(1) above plane 3 should fail")
	}
	if c.Plane() != coords.InstancePlanes-1 {
		t.Errorf("Plane() = %d, want %d", c.Plane(), coords.InstancePlanes-1)
	}
}

// TestInstanceRoundTrip 副本中的玩家格子折叠回进入前的世界坐标
func TestInstanceRoundTrip(t *testing.T) {
	c := NewSimClient(DefaultStart)
	before := c.MapRegions()

	for rotation := 1; rotation <= 4; rotation++ {
		if !c.ToggleInstance() {
			t.Fatal("ToggleInstance() should enter the instance")
		}
		if c.InstanceRotation() != rotation%4 {
			t.Errorf("rotation = %d, want %d", c.InstanceRotation(), rotation%4)
		}
		if c.BaseX() != instanceBase.X || !c.IsInInstancedRegion() {
			t.Fatalf("not in instance: base %d", c.BaseX())
		}

		template, ok := coords.FromLocalInstance(c, c.PlayerLocal())
		if !ok || template != DefaultStart {
			t.Errorf("rotation %d: template = %+v, want %+v", rotation, template, DefaultStart)
		}

		player, _ := c.PlayerLocation()
		found := false
		for _, p := range coords.ToLocalInstance(c, DefaultStart) {
			if p == player {
				found = true
			}
		}
		if !found {
			t.Errorf("rotation %d: ToLocalInstance(%+v) does not include player %+v", rotation, DefaultStart, player)
		}

		regions := c.MapRegions()
		if len(regions) != len(before) {
			t.Errorf("instance regions = %v, want %v", regions, before)
		}

		if c.ToggleInstance() {
			t.Fatal("ToggleInstance() should leave the instance")
		}
		if p, _ := c.PlayerLocation(); p != DefaultStart {
			t.Errorf("player after leaving = %+v, want %+v", p, DefaultStart)
		}
	}
}

// TestRotateGridInverse 旋转 r 次后再旋转 4-r 次回到原位
func TestRotateGridInverse(t *testing.T) {
	for r := 0; r < 4; r++ {
		for _, p := range [][2]int{{0, 0}, {3, 7}, {12, 5}} {
			x, y := rotateGrid(p[0], p[1], coords.InstanceChunks, r)
			bx, by := rotateGrid(x, y, coords.InstanceChunks, 4-r)
			if bx != p[0] || by != p[1] {
				t.Errorf("r=%d: %v -> (%d,%d) -> (%d,%d)", r, p, x, y, bx, by)
			}
		}
	}
}

// TestHover 悬停格子
func TestHover(t *testing.T) {
	c := NewSimClient(DefaultStart)
	if _, ok := c.SelectedSceneTile(); ok {
		t.Error("no tile should be hovered initially")
	}
	c.SetHovered(c.PlayerLocal(), true)
	if lp, ok := c.SelectedSceneTile(); !ok || lp != c.PlayerLocal() {
		t.Errorf("SelectedSceneTile() = %+v, %v", lp, ok)
	}
	c.SetHovered(coords.LocalPoint{}, false)
	if _, ok := c.SelectedSceneTile(); ok {
		t.Error("hover should be cleared")
	}
}
