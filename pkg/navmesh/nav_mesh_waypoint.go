package navmesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// TrianglePathToWaypoints maps each triangle of path to its centroid, then
// overwrites the first point with start and the last point with goal. With a
// single triangle both overwrites hit the same point and goal wins.
func TrianglePathToWaypoints(nav *NavMesh, path []int32, start, goal mgl32.Vec3) ([]mgl32.Vec3, error) {
	if nav == nil || len(path) == 0 {
		return nil, ErrInvalidParam
	}
	points := make([]mgl32.Vec3, len(path))
	for i, tri := range path {
		if !nav.IsValidTriangle(tri) {
			return nil, fmt.Errorf("%w: path step %d triangle %d", ErrInvalidIndex, i, tri)
		}
		points[i] = nav.triangles[tri].Center
	}
	points[0] = start
	points[len(points)-1] = goal
	return points, nil
}
