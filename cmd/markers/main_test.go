package main

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/decker502/brushmarkers/pkg/markers"
	"github.com/decker502/brushmarkers/pkg/storage"
)

var red = color.RGBA{R: 255, A: 255}

func newRepo(t *testing.T) (*markers.Repository, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	repo := markers.NewRepository(store, zerolog.Nop())

	if err := repo.Save(1234, []markers.Mark{
		markers.NewMark(1234, 10, 20, 0, red),
		markers.NewMark(1234, 11, 20, 0, red),
	}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := repo.Save(12850, []markers.Mark{markers.NewMark(12850, 38, 18, 1, red)}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	return repo, store
}

// TestList 列出区域和标记数
func TestList(t *testing.T) {
	repo, store := newRepo(t)
	var out bytes.Buffer
	if err := dispatch(repo, store, []string{"list"}, &out); err != nil {
		t.Fatalf("list error: %v", err)
	}

	text := out.String()
	for _, want := range []string{"region 1234", "region 12850", "2 marks", "2 regions, 3 marks"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

// TestExportImport 导出后导入到空存储得到相同的标记
func TestExportImport(t *testing.T) {
	for _, name := range []string{"markers.json", "markers.json.zst"} {
		t.Run(name, func(t *testing.T) {
			repo, _ := newRepo(t)
			path := filepath.Join(t.TempDir(), name)

			n, err := exportRegions(repo, path, time.Unix(0, 0))
			if err != nil {
				t.Fatalf("export error: %v", err)
			}
			if n != 2 {
				t.Errorf("exported %d regions, want 2", n)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if isCompressed(path) == bytes.HasPrefix(raw, []byte("{")) {
				t.Errorf("compressed=%v but file starts with %q", isCompressed(path), raw[:1])
			}

			target := markers.NewRepository(storage.NewMemoryStore(), zerolog.Nop())
			n, err = importRegions(target, path)
			if err != nil {
				t.Fatalf("import error: %v", err)
			}
			if n != 2 {
				t.Errorf("imported %d regions, want 2", n)
			}

			got := target.Load(1234)
			if len(got) != 2 || got[0].RegionX != 10 || got[1].RegionX != 11 {
				t.Errorf("region 1234 = %v", got)
			}
			if got := target.Load(12850); len(got) != 1 || got[0].Plane != 1 || *got[0].Color != red {
				t.Errorf("region 12850 = %v", got)
			}
		})
	}
}

// TestImportRejectsBadRecord 任何一条记录无法解析时不写入
func TestImportRejectsBadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	doc := `{"version":1,"regions":[
		{"regionId":1,"record":{"version":1,"points":[{"regionId":1,"regionX":1,"regionY":1,"z":0}]}},
		{"regionId":2,"record":"not a record"}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := markers.NewRepository(storage.NewMemoryStore(), zerolog.Nop())
	if _, err := importRegions(repo, path); err == nil {
		t.Fatal("import should fail")
	}
	if ids, _ := repo.Regions(); len(ids) != 0 {
		t.Errorf("regions after failed import = %v, want none", ids)
	}
}

// TestImportRejectsVersion 不支持的导出版本
func TestImportRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version":9,"regions":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := markers.NewRepository(storage.NewMemoryStore(), zerolog.Nop())
	if _, err := importRegions(repo, path); !errors.Is(err, markers.ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}

// TestClear 清除一个区域
func TestClear(t *testing.T) {
	repo, store := newRepo(t)
	var out bytes.Buffer
	if err := dispatch(repo, store, []string{"clear", "1234"}, &out); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	ids, _ := repo.Regions()
	if len(ids) != 1 || ids[0] != 12850 {
		t.Errorf("regions = %v, want [12850]", ids)
	}

	if err := dispatch(repo, store, []string{"clear", "abc"}, &out); err == nil {
		t.Error("clear with invalid id should fail")
	}
}

// TestUsage 未知命令或缺少参数
func TestUsage(t *testing.T) {
	repo, store := newRepo(t)
	for _, args := range [][]string{{"bogus"}, {"export"}, {"import", "a", "b"}} {
		if err := dispatch(repo, store, args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Errorf("dispatch(%v) = %v, want errUsage", args, err)
		}
	}
	if err := run(nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("run(nil) = %v, want errUsage", err)
	}
}

// TestExportRejectsCorruptRecord 损坏的区域记录导致导出失败且不写文件
func TestExportRejectsCorruptRecord(t *testing.T) {
	repo, store := newRepo(t)
	if err := store.Set(markers.ConfigGroup, markers.RegionKey(4321), "{{{"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "markers.json")
	if _, err := exportRegions(repo, path, time.Unix(0, 0)); err == nil || !strings.Contains(err.Error(), "region 4321") {
		t.Fatalf("export error = %v, want region 4321 failure", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("export file exists after failure: %v", err)
	}
}
