package format

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Text asset keywords. A keyword line switches the reader into the matching
// section; data rows are read until the next keyword.
const (
	KeyNavMesh          = "NAVMESH"
	KeyVersion          = "VERSION"
	KeyTransform        = "TRANSFORM"
	KeyVertexCount      = "VERTEX_COUNT"
	KeyVertices         = "VERTICES"
	KeyTriangleCount    = "TRIANGLE_COUNT"
	KeyTriangles        = "TRIANGLES"
	KeyAdjacency        = "ADJACENCY"
	KeyTriangleMetadata = "TRIANGLE_METADATA"
	KeyEnd              = "END"
)

// maxReserve caps preallocation from declared counts so a corrupt header
// cannot force a huge allocation.
const maxReserve = 1 << 20

type section int

const (
	sectionNone section = iota
	sectionTransform
	sectionVertices
	sectionTriangles
	sectionAdjacency
	sectionMetadata
)

// ParseStats reports what the best-effort reader did with the input.
type ParseStats struct {
	Lines             int
	Skipped           int
	DeclaredVertices  int
	DeclaredTriangles int
	AdjacencyRows     int
	SawEnd            bool
}

func LoadFromTxtFile(file string) (*NavMeshData, *ParseStats, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParseTxt(f)
}

// ParseTxt reads the line oriented navmesh format. Malformed rows are skipped
// and counted rather than rejected; only I/O errors fail the call.
func ParseTxt(r io.Reader) (*NavMeshData, *ParseStats, error) {
	data := NewNavMeshData()
	stats := new(ParseStats)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	cur := sectionNone
	transformRow := 0
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case KeyNavMesh:
			cur = sectionNone
			if len(fields) > 1 {
				data.Name = fields[1]
			}
			continue
		case KeyVersion:
			cur = sectionNone
			if v, ok := parseFloats(fields[1:], 1); ok {
				data.Version = v[0]
			} else {
				stats.Skipped++
			}
			continue
		case KeyTransform:
			cur = sectionTransform
			transformRow = 0
			data.Transform = mgl32.Ident4()
			data.HasTransform = true
			continue
		case KeyVertexCount:
			cur = sectionNone
			stats.DeclaredVertices = parseCount(fields, stats)
			data.Vertices = make([]mgl32.Vec3, 0, min(stats.DeclaredVertices, maxReserve))
			continue
		case KeyVertices:
			cur = sectionVertices
			continue
		case KeyTriangleCount:
			cur = sectionNone
			stats.DeclaredTriangles = parseCount(fields, stats)
			data.Triangles = make([][3]uint32, 0, min(stats.DeclaredTriangles, maxReserve))
			continue
		case KeyTriangles:
			cur = sectionTriangles
			continue
		case KeyAdjacency:
			cur = sectionAdjacency
			data.Neighbors = make([][3]int32, len(data.Triangles))
			for i := range data.Neighbors {
				data.Neighbors[i] = [3]int32{-1, -1, -1}
			}
			stats.AdjacencyRows = 0
			continue
		case KeyTriangleMetadata:
			cur = sectionMetadata
			continue
		case KeyEnd:
			stats.SawEnd = true
			return data, stats, nil
		}

		if !parseRow(data, stats, cur, fields, &transformRow) {
			stats.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}
	return data, stats, nil
}

func parseRow(data *NavMeshData, stats *ParseStats, cur section, fields []string, transformRow *int) bool {
	switch cur {
	case sectionTransform:
		if *transformRow >= 4 {
			return false
		}
		row := *transformRow
		*transformRow++
		v, ok := parseFloats(fields, 4)
		if !ok {
			return false
		}
		data.Transform.SetRow(row, mgl32.Vec4{v[0], v[1], v[2], v[3]})
		return true
	case sectionVertices:
		v, ok := parseFloats(fields, 3)
		if !ok {
			return false
		}
		data.Vertices = append(data.Vertices, mgl32.Vec3{v[0], v[1], v[2]})
		return true
	case sectionTriangles:
		if len(fields) < 3 {
			return false
		}
		var tri [3]uint32
		for i := 0; i < 3; i++ {
			n, err := strconv.ParseUint(fields[i], 10, 32)
			if err != nil {
				return false
			}
			tri[i] = uint32(n)
		}
		data.Triangles = append(data.Triangles, tri)
		return true
	case sectionAdjacency:
		if stats.AdjacencyRows >= len(data.Neighbors) {
			return false
		}
		ints, ok := parseInts(fields)
		if !ok {
			return false
		}
		switch {
		case len(ints) >= 4:
			// "triIndex n0 n1 n2"
			if ints[0] < 0 || int(ints[0]) >= len(data.Neighbors) {
				return false
			}
			data.Neighbors[ints[0]] = [3]int32{ints[1], ints[2], ints[3]}
		case len(ints) == 3:
			// "n0 n1 n2", row number is the triangle index
			data.Neighbors[stats.AdjacencyRows] = [3]int32{ints[0], ints[1], ints[2]}
		default:
			return false
		}
		stats.AdjacencyRows++
		return true
	case sectionMetadata:
		if len(fields) < 3 {
			return false
		}
		index, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil || index < 0 || int(index) >= len(data.Triangles) {
			return false
		}
		cost, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return false
		}
		flags, err := strconv.ParseUint(fields[2], 0, 32)
		if err != nil {
			return false
		}
		data.Metadata = append(data.Metadata, TriangleMetadata{
			Index: int32(index),
			Cost:  float32(cost),
			Flags: uint32(flags),
		})
		return true
	}
	return false
}

func parseCount(fields []string, stats *ParseStats) int {
	if len(fields) < 2 {
		stats.Skipped++
		return 0
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		stats.Skipped++
		return 0
	}
	return n
}

func parseFloats(fields []string, n int) ([]float32, bool) {
	if len(fields) < n {
		return nil, false
	}
	ret := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, false
		}
		ret[i] = float32(f)
	}
	return ret, true
}

func parseInts(fields []string) ([]int32, bool) {
	if len(fields) > 4 {
		fields = fields[:4]
	}
	ret := make([]int32, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, false
		}
		ret = append(ret, int32(n))
	}
	return ret, true
}

// WriteTxt writes data in the format ParseTxt reads. Neighbors are written as
// indexed ADJACENCY rows when present.
func WriteTxt(w io.Writer, data *NavMeshData) error {
	bw := bufio.NewWriter(w)
	name := data.Name
	if name == "" {
		name = "unnamed"
	}
	fmt.Fprintf(bw, "%s %s\n", KeyNavMesh, name)
	fmt.Fprintf(bw, "%s %s\n", KeyVersion, formatFloat(data.Version))
	if data.HasTransform {
		fmt.Fprintln(bw, KeyTransform)
		for row := 0; row < 4; row++ {
			r := data.Transform.Row(row)
			fmt.Fprintf(bw, "%s %s %s %s\n", formatFloat(r[0]), formatFloat(r[1]), formatFloat(r[2]), formatFloat(r[3]))
		}
	}
	fmt.Fprintf(bw, "%s %d\n", KeyVertexCount, len(data.Vertices))
	fmt.Fprintln(bw, KeyVertices)
	for _, v := range data.Vertices {
		fmt.Fprintf(bw, "%s %s %s\n", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	fmt.Fprintf(bw, "%s %d\n", KeyTriangleCount, len(data.Triangles))
	fmt.Fprintln(bw, KeyTriangles)
	for _, t := range data.Triangles {
		fmt.Fprintf(bw, "%d %d %d\n", t[0], t[1], t[2])
	}
	if data.Neighbors != nil {
		fmt.Fprintln(bw, KeyAdjacency)
		for i, n := range data.Neighbors {
			fmt.Fprintf(bw, "%d %d %d %d\n", i, n[0], n[1], n[2])
		}
	}
	if len(data.Metadata) != 0 {
		fmt.Fprintln(bw, KeyTriangleMetadata)
		for _, m := range data.Metadata {
			fmt.Fprintf(bw, "%d %s %#x\n", m.Index, formatFloat(m.Cost), m.Flags)
		}
	}
	fmt.Fprintln(bw, KeyEnd)
	return bw.Flush()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
