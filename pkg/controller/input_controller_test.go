package controller

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/coords"
	"github.com/decker502/brushmarkers/pkg/host"
	"github.com/decker502/brushmarkers/pkg/host/hosttest"
	"github.com/decker502/brushmarkers/pkg/markers"
	"github.com/decker502/brushmarkers/pkg/storage"
)

// 测试格子：世界坐标 (3222, 3218)，区域 12850
var testTile = coords.WorldPoint{X: 3222, Y: 3218}

type fixture struct {
	client *hosttest.Client
	repo   *markers.Repository
	store  *markers.Store
	cfg    *config.PluginConfig
	ctrl   *InputController
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := hosttest.NewClient(3168, 3168)
	client.Regions = []int{testTile.RegionID()}

	repo := markers.NewRepository(storage.NewMemoryStore(), zerolog.Nop())
	store := markers.NewStore(repo, client, zerolog.Nop())
	store.Reload(client.Regions)

	cfg := config.DefaultPluginConfig()
	return &fixture{
		client: client,
		repo:   repo,
		store:  store,
		cfg:    cfg,
		ctrl:   NewInputController(client, store, cfg, zerolog.Nop()),
	}
}

func (f *fixture) persisted() []markers.Mark {
	return f.repo.Load(testTile.RegionID())
}

// TestModifierKeys 测试修饰键状态
func TestModifierKeys(t *testing.T) {
	f := newFixture(t)

	f.ctrl.OnKeyDown(host.KeyControl)
	f.ctrl.OnKeyDown(host.KeyShift)
	if !f.ctrl.CtrlHeld() || !f.ctrl.ShiftHeld() {
		t.Fatal("both modifiers should be held")
	}

	f.ctrl.OnKeyUp(host.KeyControl)
	if f.ctrl.CtrlHeld() {
		t.Error("Ctrl should be released")
	}
	if !f.ctrl.ShiftHeld() {
		t.Error("Shift should still be held")
	}

	f.ctrl.Reset()
	if f.ctrl.ShiftHeld() {
		t.Error("Reset() should release Shift")
	}
}

// TestColorCycleWraparound 切换六次回到原来的颜色
func TestColorCycleWraparound(t *testing.T) {
	f := newFixture(t)
	start := f.ctrl.ColorIndex()

	seen := map[int]bool{}
	for i := 0; i < config.ColorCount; i++ {
		f.ctrl.OnKeyDown(host.KeyTab)
		seen[f.ctrl.ColorIndex()] = true
	}

	if f.ctrl.ColorIndex() != start {
		t.Errorf("ColorIndex after %d cycles = %d, want %d", config.ColorCount, f.ctrl.ColorIndex(), start)
	}
	if len(seen) != config.ColorCount {
		t.Errorf("visited %d colors, want %d", len(seen), config.ColorCount)
	}
}

// TestColorCycleRequiresPaintMode 画笔模式关闭时不切换颜色
func TestColorCycleRequiresPaintMode(t *testing.T) {
	f := newFixture(t)
	f.cfg.PaintMode = false

	f.ctrl.OnKeyDown(host.KeyTab)
	if f.ctrl.ColorIndex() != 0 {
		t.Errorf("ColorIndex = %d, want 0", f.ctrl.ColorIndex())
	}
}

// TestCurrentColor 当前颜色跟随颜色下标
func TestCurrentColor(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetColorIndex(7)
	if f.ctrl.ColorIndex() != 1 {
		t.Fatalf("SetColorIndex(7) -> %d, want 1", f.ctrl.ColorIndex())
	}
	if f.ctrl.CurrentColor() != f.cfg.Color(1) {
		t.Errorf("CurrentColor() = %v, want %v", f.ctrl.CurrentColor(), f.cfg.Color(1))
	}
	f.ctrl.SetColorIndex(-1)
	if f.ctrl.ColorIndex() != 5 {
		t.Errorf("SetColorIndex(-1) -> %d, want 5", f.ctrl.ColorIndex())
	}
}

// TestShiftTickAddsOnce Shift 按住时第一次 Tick 添加，第二次 Tick 数量不变
func TestShiftTickAddsOnce(t *testing.T) {
	f := newFixture(t)
	f.client.Hover(testTile)
	f.ctrl.OnKeyDown(host.KeyShift)

	f.ctrl.OnTick()
	if got := f.persisted(); len(got) != 1 {
		t.Fatalf("after first tick: %d marks, want 1", len(got))
	}
	if f.store.Len() != 1 {
		t.Errorf("store Len() = %d, want 1", f.store.Len())
	}

	f.ctrl.OnTick()
	if got := f.persisted(); len(got) != 1 {
		t.Errorf("after second tick: %d marks, want 1", len(got))
	}

	m := f.persisted()[0]
	if m.RegionX != testTile.RegionX() || m.RegionY != testTile.RegionY() || m.Plane != 0 {
		t.Errorf("mark = %v, want tile %+v", m, testTile)
	}
	if *m.Color != f.cfg.Color(0) {
		t.Errorf("mark color = %v, want current color %v", *m.Color, f.cfg.Color(0))
	}
}

// TestCtrlTickRemoves Ctrl 按住时删除已有标记，之后的 Tick 不改变集合
func TestCtrlTickRemoves(t *testing.T) {
	f := newFixture(t)
	f.store.Add(markers.NewMark(testTile.RegionID(), testTile.RegionX(), testTile.RegionY(), 0, f.cfg.Color(3)))
	f.client.Hover(testTile)
	f.ctrl.OnKeyDown(host.KeyControl)

	f.ctrl.OnTick()
	if got := f.persisted(); len(got) != 0 {
		t.Fatalf("after ctrl tick: %v, want none", got)
	}

	f.ctrl.OnTick()
	if got := f.persisted(); len(got) != 0 {
		t.Errorf("after second ctrl tick: %v, want none", got)
	}
	if f.store.Len() != 0 {
		t.Errorf("store Len() = %d, want 0", f.store.Len())
	}
}

// TestShiftTakesPriority 同时按住时 Shift 优先
func TestShiftTakesPriority(t *testing.T) {
	f := newFixture(t)
	f.client.Hover(testTile)
	f.ctrl.OnKeyDown(host.KeyControl)
	f.ctrl.OnKeyDown(host.KeyShift)

	f.ctrl.OnTick()
	if got := f.persisted(); len(got) != 1 {
		t.Errorf("with both held: %d marks, want 1", len(got))
	}
}

// TestTickNoOps 各种不应产生修改的 Tick
func TestTickNoOps(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{"没有按键", func(f *fixture) { f.client.Hover(testTile) }},
		{"没有悬停格子", func(f *fixture) { f.ctrl.OnKeyDown(host.KeyShift) }},
		{"画笔模式关闭", func(f *fixture) {
			f.cfg.PaintMode = false
			f.client.Hover(testTile)
			f.ctrl.OnKeyDown(host.KeyShift)
		}},
		{"松开 Shift", func(f *fixture) {
			f.client.Hover(testTile)
			f.ctrl.OnKeyDown(host.KeyShift)
			f.ctrl.OnKeyUp(host.KeyShift)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)
			f.ctrl.OnTick()
			if got := f.persisted(); len(got) != 0 {
				t.Errorf("persisted = %v, want none", got)
			}
		})
	}
}

// TestMarkTileToggles 单击路径使用切换语义
func TestMarkTileToggles(t *testing.T) {
	f := newFixture(t)
	f.client.Hover(testTile)
	lp, _ := f.client.SelectedSceneTile()

	if !f.ctrl.MarkTile(lp) {
		t.Fatal("MarkTile() = false")
	}
	if len(f.persisted()) != 1 {
		t.Fatalf("after first MarkTile: %d marks, want 1", len(f.persisted()))
	}

	// 换一种颜色再次点击同一格子会删除
	f.ctrl.CycleColor()
	f.ctrl.MarkTile(lp)
	if len(f.persisted()) != 0 {
		t.Errorf("after second MarkTile: %d marks, want 0", len(f.persisted()))
	}
}

// TestTickInInstance 副本中涂色时保存模板坐标
func TestTickInInstance(t *testing.T) {
	f := newFixture(t)

	chunks := make([][][]int, coords.InstancePlanes)
	for z := range chunks {
		chunks[z] = make([][]int, coords.InstanceChunks)
		for x := range chunks[z] {
			chunks[z][x] = make([]int, coords.InstanceChunks)
		}
	}
	// 场景区块 (0,0) 使用模板区块 testTile 所在区块
	chunks[0][0][0] = coords.PackTemplateChunk(testTile.X/8, testTile.Y/8, 0, 0)
	f.client.Base = coords.WorldPoint{X: 8000, Y: 8000}
	f.client.Instanced = true
	f.client.Chunks = chunks

	f.client.Hover(coords.WorldPoint{X: 8000 + testTile.X%8, Y: 8000 + testTile.Y%8})
	f.ctrl.OnKeyDown(host.KeyShift)
	f.ctrl.OnTick()

	got := f.persisted()
	if len(got) != 1 {
		t.Fatalf("persisted %d marks in template region, want 1", len(got))
	}
	if got[0].RegionX != testTile.RegionX() || got[0].RegionY != testTile.RegionY() {
		t.Errorf("mark = %v, want template tile %+v", got[0], testTile)
	}
	// 内存中的标记是副本坐标
	points := f.store.Points()
	if len(points) != 1 || points[0].Point.X != 8000+testTile.X%8 {
		t.Errorf("store points = %+v, want instance copy", points)
	}
}

// TestTickInInstanceTemplatePlane 副本楼层与模板楼层不同时，涂色的格子保存后仍然可见
func TestTickInInstanceTemplatePlane(t *testing.T) {
	f := newFixture(t)

	chunks := make([][][]int, coords.InstancePlanes)
	for z := range chunks {
		chunks[z] = make([][]int, coords.InstanceChunks)
		for x := range chunks[z] {
			chunks[z][x] = make([]int, coords.InstanceChunks)
		}
	}
	// 副本楼层 0 的区块 (0,0) 来自楼层 1 上 testTile 所在的模板区块
	chunks[0][0][0] = coords.PackTemplateChunk(testTile.X/8, testTile.Y/8, 1, 0)
	f.client.Base = coords.WorldPoint{X: 8000, Y: 8000}
	f.client.Instanced = true
	f.client.Chunks = chunks

	f.client.Hover(coords.WorldPoint{X: 8000 + testTile.X%8, Y: 8000 + testTile.Y%8})
	f.ctrl.OnKeyDown(host.KeyShift)
	f.ctrl.OnTick()

	got := f.persisted()
	if len(got) != 1 || got[0].Plane != 0 {
		t.Fatalf("persisted = %v, want one mark on plane 0", got)
	}
	points := f.store.Points()
	if len(points) != 1 {
		t.Fatalf("store.Len() = %d, want 1 visible instance tile", len(points))
	}
	want := coords.WorldPoint{X: 8000 + testTile.X%8, Y: 8000 + testTile.Y%8, Plane: 0}
	if points[0].Point != want {
		t.Errorf("point = %+v, want %+v", points[0].Point, want)
	}
}
