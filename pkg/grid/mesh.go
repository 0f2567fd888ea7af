package grid

import (
	"github.com/Faultbox/gridmesh/pkg/math"
)

// Options controls mesh generation. The zero value produces the reference
// layout on a unit-spaced grid anchored at the origin.
type Options struct {
	Scheme  Scheme
	Spacing float32
	Origin  math.Vec3
}

// Mesh holds generated grid geometry ready for serialization or export.
type Mesh struct {
	Dimensions Dimensions
	Vertices   []math.Vec3
	Triangles  []Triangle
}

// Build generates the vertices and triangles for d.
func Build(d Dimensions, opts Options) (*Mesh, error) {
	vertices, err := Vertices(d)
	if err != nil {
		return nil, err
	}
	Transform(vertices, Placement(opts.Spacing, opts.Origin))

	triangles, err := Triangles(d, opts.Scheme)
	if err != nil {
		return nil, err
	}

	return &Mesh{
		Dimensions: d,
		Vertices:   vertices,
		Triangles:  triangles,
	}, nil
}

// Indices returns the triangle list flattened to three indices per triangle.
func (m *Mesh) Indices() []uint32 {
	indices := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		indices = append(indices, t[0], t[1], t[2])
	}
	return indices
}

// Positions returns the vertices as [x, y, z] arrays.
func (m *Mesh) Positions() [][3]float32 {
	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Array()
	}
	return positions
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// FlatNormals returns one normal per vertex taken from the last triangle that
// references it. Vertices no triangle references keep a zero normal.
func (m *Mesh) FlatNormals() [][3]float32 {
	normals := make([][3]float32, len(m.Vertices))
	for _, t := range m.Triangles {
		p0, p1, p2 := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize().Array()
		normals[t[0]] = n
		normals[t[1]] = n
		normals[t[2]] = n
	}
	return normals
}
