package format

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const quadAsset = `# unit quad
NAVMESH quad
VERSION 2.5
TRANSFORM
1 0 0 10
0 1 0 20
0 0 1 30
0 0 0 1
VERTEX_COUNT 4
VERTICES
0 0 0
1 0 0
1 0 1
0 0 1
TRIANGLE_COUNT 2
TRIANGLES
0 1 2
0 2 3
END
`

func checkt(t *testing.T, err error) {
	if err != nil {
		t.Fatalf("fail with error: %v", err)
	}
}

func TestParseTxt(t *testing.T) {
	data, stats, err := ParseTxt(strings.NewReader(quadAsset))
	checkt(t, err)

	if data.Name != "quad" {
		t.Errorf("name = %q, want quad", data.Name)
	}
	if data.Version != 2.5 {
		t.Errorf("version = %v, want 2.5", data.Version)
	}
	if !data.HasTransform {
		t.Fatalf("transform block not recorded")
	}
	if got := data.Transform.Row(0); got != (mgl32.Vec4{1, 0, 0, 10}) {
		t.Errorf("transform row 0 = %v", got)
	}
	if got := data.Transform.Row(2); got != (mgl32.Vec4{0, 0, 1, 30}) {
		t.Errorf("transform row 2 = %v", got)
	}
	wantVerts := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}
	if !reflect.DeepEqual(data.Vertices, wantVerts) {
		t.Errorf("vertices = %v, want %v (transform must not be applied)", data.Vertices, wantVerts)
	}
	wantTris := [][3]uint32{{0, 1, 2}, {0, 2, 3}}
	if !reflect.DeepEqual(data.Triangles, wantTris) {
		t.Errorf("triangles = %v, want %v", data.Triangles, wantTris)
	}
	if data.Neighbors != nil {
		t.Errorf("neighbors = %v, want nil without ADJACENCY", data.Neighbors)
	}
	if stats.Skipped != 0 || !stats.SawEnd {
		t.Errorf("stats = %+v", stats)
	}
	if stats.DeclaredVertices != 4 || stats.DeclaredTriangles != 2 {
		t.Errorf("declared counts = %d/%d", stats.DeclaredVertices, stats.DeclaredTriangles)
	}
}

func TestParseTxtAdjacencyForms(t *testing.T) {
	adjTests := []struct {
		msg  string
		rows string
		want [][3]int32
	}{
		{
			"indexed rows",
			"ADJACENCY\n1 -1 -1 0\n0 -1 1 -1\n",
			[][3]int32{{-1, 1, -1}, {-1, -1, 0}},
		},
		{
			"positional rows",
			"ADJACENCY\n-1 1 -1\n-1 -1 0\n",
			[][3]int32{{-1, 1, -1}, {-1, -1, 0}},
		},
		{
			"out of range index skipped",
			"ADJACENCY\n7 1 1 1\n-1 1 -1\n",
			[][3]int32{{-1, 1, -1}, {-1, -1, -1}},
		},
	}

	for _, tt := range adjTests {
		asset := strings.Replace(quadAsset, "END\n", tt.rows+"END\n", 1)
		data, _, err := ParseTxt(strings.NewReader(asset))
		checkt(t, err)
		if !reflect.DeepEqual(data.Neighbors, tt.want) {
			t.Errorf("%s: neighbors = %v, want %v", tt.msg, data.Neighbors, tt.want)
		}
	}
}

func TestParseTxtSkipsMalformed(t *testing.T) {
	asset := `NAVMESH broken
VERTICES
0 0 0
1 0
banana 0 0
1 0 1
0 0 1
TRIANGLES
0 1 2
0 -2 3
0 2 3
TRIANGLE_METADATA
1 2.5 0x4
9 1 0
x 1 0
`
	data, stats, err := ParseTxt(strings.NewReader(asset))
	checkt(t, err)
	if len(data.Vertices) != 3 {
		t.Errorf("got %d vertices, want 3", len(data.Vertices))
	}
	if len(data.Triangles) != 2 {
		t.Errorf("got %d triangles, want 2", len(data.Triangles))
	}
	if len(data.Metadata) != 1 || data.Metadata[0] != (TriangleMetadata{Index: 1, Cost: 2.5, Flags: 4}) {
		t.Errorf("metadata = %+v", data.Metadata)
	}
	if stats.Skipped != 5 {
		t.Errorf("skipped = %d, want 5", stats.Skipped)
	}
	if stats.SawEnd {
		t.Errorf("asset without END reported SawEnd")
	}
}

func TestWriteTxtRoundTrip(t *testing.T) {
	data, _, err := ParseTxt(strings.NewReader(quadAsset))
	checkt(t, err)
	data.Neighbors = [][3]int32{{-1, 1, -1}, {-1, -1, 0}}
	data.Metadata = []TriangleMetadata{{Index: 1, Cost: 1.5, Flags: 3}}

	var buf bytes.Buffer
	checkt(t, WriteTxt(&buf, data))
	got, stats, err := ParseTxt(&buf)
	checkt(t, err)
	if stats.Skipped != 0 {
		t.Errorf("written asset has %d skipped lines:\n%s", stats.Skipped, buf.String())
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("round trip mismatch\n got %+v\nwant %+v", got, data)
	}
}

func TestGobFile(t *testing.T) {
	data, _, err := ParseTxt(strings.NewReader(quadAsset))
	checkt(t, err)
	file := filepath.Join(t.TempDir(), "quad.gob")
	checkt(t, SaveToGobFile(file, data))
	got, err := LoadFromGobFile(file)
	checkt(t, err)
	if !reflect.DeepEqual(got, data) {
		t.Errorf("gob mismatch\n got %+v\nwant %+v", got, data)
	}
}
