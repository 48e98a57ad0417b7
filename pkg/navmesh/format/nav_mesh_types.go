package format

import (
	"encoding/gob"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// NavMeshData is the raw content of a navmesh asset, before any derived data
// is computed.
type NavMeshData struct {
	Name    string
	Version float32

	// Transform is kept for asset compatibility only. Vertices are exported in
	// world space and the matrix is never applied to them.
	Transform    mgl32.Mat4
	HasTransform bool

	Vertices  []mgl32.Vec3
	Triangles [][3]uint32

	// Neighbors is nil when the asset carries no ADJACENCY section.
	Neighbors [][3]int32

	Metadata []TriangleMetadata
}

// TriangleMetadata overrides the default cost and flags of one triangle.
type TriangleMetadata struct {
	Index int32
	Cost  float32
	Flags uint32
}

func NewNavMeshData() *NavMeshData {
	return &NavMeshData{
		Version:   1.0,
		Transform: mgl32.Ident4(),
	}
}

func LoadFromGobFile(file string) (*NavMeshData, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var data NavMeshData
	err = gob.NewDecoder(f).Decode(&data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func SaveToGobFile(file string, data *NavMeshData) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	err = gob.NewEncoder(f).Encode(data)
	if err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
