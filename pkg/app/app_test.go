package app

import (
	"image/color"
	"testing"

	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/markers"
	"github.com/decker502/brushmarkers/pkg/storage"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(Config{Store: storage.NewMemoryStore(), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

// TestNewAppErrors 缺少存储或出生点无效
func TestNewAppErrors(t *testing.T) {
	if _, err := NewApp(Config{Logger: zerolog.Nop()}); err == nil {
		t.Error("NewApp() without store should fail")
	}

	outside := coords.WorldPoint{X: 0, Y: 0}
	if _, err := NewApp(Config{Store: storage.NewMemoryStore(), Start: &outside, Logger: zerolog.Nop()}); err == nil {
		t.Error("NewApp() with start outside the world should fail")
	}
}

// TestLoadSceneReloadsMarks 场景加载后插件读取最新的标记
func TestLoadSceneReloadsMarks(t *testing.T) {
	a := newTestApp(t)
	if len(a.Plugin().Points()) != 0 {
		t.Fatalf("Points() = %d, want 0", len(a.Plugin().Points()))
	}

	m := markers.NewMark(DefaultStart.RegionID(), DefaultStart.RegionX(), DefaultStart.RegionY(), 0, color.RGBA{G: 255, A: 255})
	if err := a.Plugin().Repository().Save(DefaultStart.RegionID(), []markers.Mark{m}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	a.loadScene()
	points := a.Plugin().Points()
	if len(points) != 1 || points[0].Point != DefaultStart {
		t.Fatalf("Points() = %+v, want mark at %+v", points, DefaultStart)
	}

	// 进入副本后标记出现在副本坐标上
	a.Client().ToggleInstance()
	a.loadScene()
	player, _ := a.Client().PlayerLocation()
	points = a.Plugin().Points()
	if len(points) != 1 || points[0].Point != player {
		t.Errorf("instance Points() = %+v, want mark under player %+v", points, player)
	}
}

// TestMarkTileThroughApp 单击路径写入存储
func TestMarkTileThroughApp(t *testing.T) {
	a := newTestApp(t)
	lp := a.Client().PlayerLocal()

	if !a.Plugin().OnMarkTile(lp) {
		t.Fatal("OnMarkTile() = false")
	}
	saved := a.Plugin().Repository().Load(DefaultStart.RegionID())
	if len(saved) != 1 || saved[0].RegionX != DefaultStart.RegionX() || saved[0].RegionY != DefaultStart.RegionY() {
		t.Errorf("saved = %v, want player tile", saved)
	}
}
