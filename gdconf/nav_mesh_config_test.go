package gdconf

import (
	"os"
	"path/filepath"
	"testing"
)

const levelConfig = `
# 关卡列表
[
  {
    scene_id: 3
    name: teyvat
    file: scene3.txt
    expansion_cap: 20000
  }
  {
    scene_id: 5
    name: arena
    file: "/abs/arena.txt"
    exclude_flags: 4
  }
  {
    scene_id: 7
    name: old
    file: old.txt
    disable: true
  }
  {
    scene_id: 9
    name: broken
  }
]
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "NavMeshConfig.hjson")
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadNavMeshConfig(t *testing.T) {
	// BOM is stripped
	path := writeConfig(t, "\xEF\xBB\xBF"+levelConfig)
	gdc, err := LoadGameDataConfig(path, "data")
	if err != nil {
		t.Fatal(err)
	}
	CONF = gdc

	if len(GetNavMeshConfigMap()) != 2 {
		t.Fatalf("got %d levels, want 2", len(GetNavMeshConfigMap()))
	}
	teyvat := GetNavMeshConfigBySceneId(3)
	if teyvat == nil || teyvat.Name != "teyvat" || teyvat.ExpansionCap != 20000 {
		t.Fatalf("scene 3 = %+v", teyvat)
	}
	if got := GetNavMeshFilePath(teyvat); got != filepath.Join("data", "scene3.txt") {
		t.Errorf("scene 3 path = %v", got)
	}
	arena := GetNavMeshConfigBySceneId(5)
	if arena == nil || arena.ExcludeFlags != 4 || arena.ExpansionCap != 0 {
		t.Fatalf("scene 5 = %+v", arena)
	}
	if got := GetNavMeshFilePath(arena); got != "/abs/arena.txt" {
		t.Errorf("scene 5 path = %v", got)
	}
	if GetNavMeshConfigBySceneId(7) != nil || GetNavMeshConfigBySceneId(9) != nil {
		t.Errorf("disabled or incomplete levels were loaded")
	}
}

func TestLoadNavMeshConfigErrors(t *testing.T) {
	if _, err := LoadGameDataConfig(filepath.Join(t.TempDir(), "missing.hjson"), ""); err == nil {
		t.Errorf("missing file loaded")
	}
	dupTests := []struct {
		msg     string
		content string
	}{
		{"both enabled", `[{"scene_id": 1, "file": "a.txt"}, {"scene_id": 1, "file": "b.txt"}]`},
		{"disabled first", `[{"scene_id": 1, "file": "a.txt", "disable": true}, {"scene_id": 1, "file": "b.txt"}]`},
		{"disabled last", `[{"scene_id": 1, "file": "a.txt"}, {"scene_id": 1, "file": "b.txt", "disable": true}]`},
	}
	for _, tt := range dupTests {
		if _, err := LoadGameDataConfig(writeConfig(t, tt.content), ""); err == nil {
			t.Errorf("%s: duplicate scene id loaded", tt.msg)
		}
	}
	bad := writeConfig(t, `[{scene_id: "x"`)
	if _, err := LoadGameDataConfig(bad, ""); err == nil {
		t.Errorf("malformed file loaded")
	}
}
