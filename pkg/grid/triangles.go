package grid

import "fmt"

// Triangles returns two triangles per quad cell, (Width-1)*2*(Height-1) in
// total. For quad column k of quad row i, with upper-left corner A, upper-right
// B, lower-left C and lower-right D, the pair is emitted as (A, C, D) then
// (A, B, D). The scheme decides which row A and B are taken from.
//
// A width of 1 has no quad columns and yields an empty slice.
func Triangles(d Dimensions, s Scheme) ([]Triangle, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if s != SchemeReference && s != SchemeRowOffset {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, s)
	}

	w := uint32(d.Width)
	triangles := make([]Triangle, 0, d.TriangleCount())

	for i := 0; i < d.Height-1; i++ {
		var upper uint32
		if s == SchemeRowOffset {
			upper = uint32(i) * w
		}
		lower := uint32(i+1) * w

		for j := 0; j < 2*(d.Width-1); j++ {
			k := uint32(j / 2)
			if j%2 == 0 {
				triangles = append(triangles, Triangle{upper + k, lower + k, lower + k + 1})
			} else {
				triangles = append(triangles, Triangle{upper + k, upper + k + 1, lower + k + 1})
			}
		}
	}

	if len(triangles) != d.TriangleCount() {
		return nil, fmt.Errorf("%w: produced %d, want %d", ErrIndexCount, len(triangles), d.TriangleCount())
	}
	return triangles, nil
}
