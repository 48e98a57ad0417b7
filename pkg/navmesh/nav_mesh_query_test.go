package navmesh

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIsPointInTriangle(t *testing.T) {
	m, err := NewNavMesh(&NavMeshCreateParams{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}, {2, 0, 0}, {3, 0, 0}, {2, 5, 0}},
		// triangle 2 is a sliver whose XZ projection has no area
		Indices: [][3]uint32{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}},
	})
	checkt(t, err)

	containTests := []struct {
		msg  string
		p    mgl32.Vec3
		tri  int32
		want bool
	}{
		{"centroid", mgl32.Vec3{2.0 / 3.0, 0, 1.0 / 3.0}, 0, true},
		{"interior point ignores height", mgl32.Vec3{0.9, 100, 0.1}, 0, true},
		{"vertex", mgl32.Vec3{1, 0, 0}, 0, true},
		{"shared edge", mgl32.Vec3{0.5, 0, 0.5}, 1, true},
		{"other side of diagonal", mgl32.Vec3{0.1, 0, 0.9}, 0, false},
		{"far away", mgl32.Vec3{5, 0, 5}, 0, false},
		{"degenerate projection", mgl32.Vec3{2.5, 0, 0}, 2, false},
		{"negative index", mgl32.Vec3{0.9, 0, 0.1}, -1, false},
		{"index past end", mgl32.Vec3{0.9, 0, 0.1}, 3, false},
	}

	for _, tt := range containTests {
		if got := m.IsPointInTriangle(tt.p, tt.tri); got != tt.want {
			t.Errorf("%s: IsPointInTriangle(%v, %d) = %v, want %v", tt.msg, tt.p, tt.tri, got, tt.want)
		}
	}
}

func TestCentroidContainment(t *testing.T) {
	m := newGridMesh(t, 4, 4)
	for i := 0; i < m.TriangleCount(); i++ {
		tri, _ := m.Triangle(int32(i))
		if !m.IsPointInTriangle(tri.Center, int32(i)) {
			t.Errorf("triangle %d does not contain its centroid %v", i, tri.Center)
		}
		if m.IsPointInTriangle(tri.Center.Add(mgl32.Vec3{1000, 0, 1000}), int32(i)) {
			t.Errorf("triangle %d contains a far point", i)
		}
	}
}

func TestQuadLocate(t *testing.T) {
	for _, settings := range []NavMeshBuildSettings{{}, {SpatialIndex: true}} {
		m := newQuadMesh(t, settings)
		far := mgl32.Vec3{5, 0, 5}

		if tri := m.FindTriangleContainingPoint(far); tri != NoNeighbor {
			t.Errorf("index %v: containing(%v) = %d, want -1", settings.SpatialIndex, far, tri)
		}
		// both centroids are equally far, the lowest index wins
		if tri := m.FindNearestTriangle(far); tri != 0 && tri != 1 {
			t.Errorf("index %v: nearest(%v) = %d, want 0 or 1", settings.SpatialIndex, far, tri)
		}
		if tri := m.FindNearestTriangle(mgl32.Vec3{0, 0, 5}); tri != 1 {
			t.Errorf("index %v: nearest((0,0,5)) = %d, want 1", settings.SpatialIndex, tri)
		}
		tri, contained, ok := m.Localize(far)
		if !ok || contained || (tri != 0 && tri != 1) {
			t.Errorf("index %v: Localize(%v) = %d %v %v", settings.SpatialIndex, far, tri, contained, ok)
		}
		tri, contained, ok = m.Localize(mgl32.Vec3{0.1, 0, 0.9})
		if !ok || !contained || tri != 1 {
			t.Errorf("index %v: Localize((0.1,0,0.9)) = %d %v %v", settings.SpatialIndex, tri, contained, ok)
		}
	}
}

func TestSpatialIndexMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := gridParams(24, 17, mgl32.Vec3{-3, 0, 2})
	for i := range params.Vertices {
		params.Vertices[i][1] = rng.Float32() * 4
	}
	m, err := NewNavMesh(params)
	checkt(t, err)
	if !m.HasSpatialIndex() {
		t.Fatalf("spatial index not built")
	}

	for i := 0; i < 2000; i++ {
		p := mgl32.Vec3{rng.Float32()*32 - 7, rng.Float32()*10 - 3, rng.Float32()*25 - 2}
		if got, want := m.FindTriangleContainingPoint(p), m.FindTriangleContainingPointBruteForce(p); got != want {
			t.Fatalf("containing(%v) = %d, brute force %d", p, got, want)
		}
		if got, want := m.FindNearestTriangle(p), m.FindNearestTriangleBruteForce(p); got != want {
			t.Fatalf("nearest(%v) = %d, brute force %d", p, got, want)
		}
	}

	// vertices and centroids exercise ties
	for i := 0; i < m.TriangleCount(); i++ {
		tri, _ := m.Triangle(int32(i))
		for _, p := range []mgl32.Vec3{tri.Center, params.Vertices[tri.Verts[0]]} {
			if got, want := m.FindTriangleContainingPoint(p), m.FindTriangleContainingPointBruteForce(p); got != want {
				t.Fatalf("containing(%v) = %d, brute force %d", p, got, want)
			}
			if got, want := m.FindNearestTriangle(p), m.FindNearestTriangleBruteForce(p); got != want {
				t.Fatalf("nearest(%v) = %d, brute force %d", p, got, want)
			}
		}
	}
}

func TestEmptyMesh(t *testing.T) {
	m, err := NewNavMesh(&NavMeshCreateParams{Settings: DefaultBuildSettings()})
	checkt(t, err)
	p := mgl32.Vec3{1, 2, 3}
	if tri := m.FindTriangleContainingPoint(p); tri != NoNeighbor {
		t.Errorf("containing = %d", tri)
	}
	if tri := m.FindNearestTriangle(p); tri != NoNeighbor {
		t.Errorf("nearest = %d", tri)
	}
	if _, _, ok := m.Localize(p); ok {
		t.Errorf("Localize on empty mesh succeeded")
	}
}

func TestNonFinitePoint(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	points := []mgl32.Vec3{{nan, 0, 0}, {0, nan, 0}, {0, 0, inf}, {-inf, 0, 1}}

	for _, settings := range []NavMeshBuildSettings{{}, DefaultBuildSettings()} {
		params := gridParams(4, 4, mgl32.Vec3{})
		params.Settings = settings
		m, err := NewNavMesh(params)
		checkt(t, err)
		for _, p := range points {
			if tri := m.FindTriangleContainingPoint(p); tri != NoNeighbor {
				t.Errorf("index %v: containing(%v) = %d", m.HasSpatialIndex(), p, tri)
			}
			if got, want := m.FindNearestTriangle(p), m.FindNearestTriangleBruteForce(p); got != NoNeighbor || want != NoNeighbor {
				t.Errorf("index %v: nearest(%v) = %d, brute force %d", m.HasSpatialIndex(), p, got, want)
			}
			if _, _, ok := m.Localize(p); ok {
				t.Errorf("index %v: Localize(%v) succeeded", m.HasSpatialIndex(), p)
			}
		}
		q := newQuery(t, m, 0)
		if _, err := q.FindPath(mgl32.Vec3{nan, 0, 0}, mgl32.Vec3{1, 0, 1}); !errors.Is(err, ErrNoPath) {
			t.Errorf("index %v: FindPath from NaN err = %v", m.HasSpatialIndex(), err)
		}
	}
}

func TestDistanceToTriangle(t *testing.T) {
	m := newQuadMesh(t, DefaultBuildSettings())
	d := m.DistanceToTriangle(mgl32.Vec3{2.0 / 3.0, 3, 1.0 / 3.0}, 0)
	if !mgl32.FloatEqualThreshold(d, 3, 1e-5) {
		t.Errorf("distance = %v, want 3", d)
	}
	if d := m.DistanceToTriangle(mgl32.Vec3{}, 9); !math.IsInf(float64(d), 1) {
		t.Errorf("distance to missing triangle = %v, want +Inf", d)
	}
}
