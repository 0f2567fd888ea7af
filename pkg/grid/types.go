// Package grid generates the vertex and triangle data of a flat, row-major
// grid mesh.
package grid

import (
	"errors"
	"fmt"
	stdmath "math"
	"strings"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// Grid errors.
var (
	ErrHeightTooSmall = errors.New("grid height must be greater than 1")
	ErrWidthTooSmall  = errors.New("grid width must be at least 1")
	ErrGridTooLarge   = errors.New("grid vertex count exceeds uint32 index range")
	ErrAxisTooLarge   = errors.New("grid axis exceeds exact float32 coordinate range")
	ErrUnknownScheme  = errors.New("unknown index scheme")
	ErrIndexCount     = errors.New("triangle count mismatch")
)

// MaxAxis is the largest Width or Height whose integer coordinates are all
// exactly representable as float32.
const MaxAxis = 1 << 24

// Dimensions is the number of grid points along x (Width) and y (Height).
type Dimensions struct {
	Width  int
	Height int
}

// Validate checks the preconditions shared by Vertices and Triangles.
func (d Dimensions) Validate() error {
	if d.Height <= 1 {
		return fmt.Errorf("%w: got %d", ErrHeightTooSmall, d.Height)
	}
	if d.Width < 1 {
		return fmt.Errorf("%w: got %d", ErrWidthTooSmall, d.Width)
	}
	if d.Width > MaxAxis || d.Height > MaxAxis {
		return fmt.Errorf("%w: %dx%d, max %d", ErrAxisTooLarge, d.Width, d.Height, MaxAxis)
	}
	if uint64(d.Width)*uint64(d.Height) > stdmath.MaxUint32 {
		return fmt.Errorf("%w: %dx%d", ErrGridTooLarge, d.Width, d.Height)
	}
	return nil
}

// VertexCount returns Width*Height.
func (d Dimensions) VertexCount() int {
	return d.Width * d.Height
}

// QuadCount returns the number of quad cells, (Width-1)*(Height-1).
func (d Dimensions) QuadCount() int {
	if d.Width < 1 || d.Height < 1 {
		return 0
	}
	return (d.Width - 1) * (d.Height - 1)
}

// TriangleCount returns the number of index triples, two per quad cell.
func (d Dimensions) TriangleCount() int {
	return d.QuadCount() * 2
}

// String returns the dimensions as "WxH".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Triangle is a triple of indices into the vertex sequence.
type Triangle [3]uint32

// Scheme selects how quad corners are mapped to vertex indices.
type Scheme int

const (
	// SchemeReference anchors the upper corners of every quad on the first
	// grid row: (k, (i+1)W+k, (i+1)W+k+1) and (k, k+1, (i+1)W+k+1). This is
	// the layout existing .dt assets were generated with.
	SchemeReference Scheme = iota
	// SchemeRowOffset anchors the upper corners on row i, so every quad row
	// is stitched to its own upper edge.
	SchemeRowOffset
)

// String returns the config name of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeReference:
		return "reference"
	case SchemeRowOffset:
		return "row_offset"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseScheme maps a config name to a Scheme. Empty selects SchemeReference.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "reference":
		return SchemeReference, nil
	case "row_offset", "row-offset":
		return SchemeRowOffset, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns Max - Min.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
