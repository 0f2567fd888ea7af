package grid

import (
	"github.com/Faultbox/gridmesh/pkg/math"
)

// Vertices returns the Width*Height grid points in row-major order. The point
// at row i, column j sits at index i*Width+j with position (j, i, 0).
func Vertices(d Dimensions) ([]math.Vec3, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	vertices := make([]math.Vec3, d.VertexCount())
	for i := 0; i < d.Height; i++ {
		for j := 0; j < d.Width; j++ {
			vertices[i*d.Width+j] = math.Vec3{X: float32(j), Y: float32(i), Z: 0}
		}
	}
	return vertices, nil
}

// Transform applies m to every vertex in place.
func Transform(vertices []math.Vec3, m math.Mat4) {
	if m.IsIdentity() {
		return
	}
	for i, v := range vertices {
		vertices[i] = m.TransformVec3(v)
	}
}

// Placement returns the matrix that scales unit grid coordinates by spacing
// and then moves the grid origin to origin. A spacing of 0 is treated as 1.
func Placement(spacing float32, origin math.Vec3) math.Mat4 {
	if spacing == 0 {
		spacing = 1
	}
	return math.Translate(origin.X, origin.Y, origin.Z).Mul(math.Scale(spacing, spacing, spacing))
}
