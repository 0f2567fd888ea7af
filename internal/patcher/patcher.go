// Package patcher splices generated grid arrays into model data files.
package patcher

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/pkg/formats"
	"github.com/Faultbox/gridmesh/pkg/grid"
)

// ErrIndexOutOfRange is returned by Inspect when a triangle references a
// vertex the document does not contain.
var ErrIndexOutOfRange = errors.New("triangle index out of range")

// Result describes a completed splice.
type Result struct {
	Path        string
	HeaderLines int
	Vertices    int
	Triangles   int
	Bytes       int
	OldBodySum  uint64 // xxhash of the body that was replaced
	NewBodySum  uint64 // xxhash of the body that was written
}

// Changed reports whether the written body differs from the replaced one.
func (r *Result) Changed() bool {
	return r.OldBodySum != r.NewBodySum
}

// Patch reads the DT file at path, keeps its header, replaces the body with
// the mesh arrays and overwrites the file. The file is read fully before it
// is reopened for writing; the write itself is not atomic.
func Patch(path string, mesh *grid.Mesh) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	doc, err := formats.ParseDT(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	oldSum := xxhash.Sum64(doc.Body)
	oldLen := len(doc.Body)
	doc.SetArrays(mesh.Vertices, mesh.Triangles)
	out := doc.Bytes()

	logger.Debug("splicing arrays",
		zap.String("path", path),
		zap.Int("old_body_bytes", oldLen),
		zap.Int("new_body_bytes", len(doc.Body)),
	)

	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, errors.Wrapf(err, "writing %s", path)
	}

	return &Result{
		Path:        path,
		HeaderLines: len(doc.Header),
		Vertices:    len(mesh.Vertices),
		Triangles:   len(mesh.Triangles),
		Bytes:       len(out),
		OldBodySum:  oldSum,
		NewBodySum:  xxhash.Sum64(doc.Body),
	}, nil
}

// Report summarizes the arrays found in a DT file.
type Report struct {
	Path       string
	Vertices   int
	Triangles  int
	MaxIndex   uint32
	BodySum    uint64
	Dimensions grid.Dimensions // Zero unless the vertices form a unit grid
}

// Inspect parses the arrays of the DT file at path and checks that every
// triangle index refers to an existing vertex.
func Inspect(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	doc, err := formats.ParseDT(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	vertices, triangles, err := doc.Arrays()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	report := &Report{
		Path:      path,
		Vertices:  len(vertices),
		Triangles: len(triangles),
		BodySum:   xxhash.Sum64(doc.Body),
	}

	for n, t := range triangles {
		for _, idx := range t {
			if int(idx) >= len(vertices) {
				return nil, errors.Wrap(ErrIndexOutOfRange,
					fmt.Sprintf("%s: triangle %d references vertex %d of %d", path, n, idx, len(vertices)))
			}
			report.MaxIndex = max(report.MaxIndex, idx)
		}
	}

	if len(vertices) > 0 {
		last := vertices[len(vertices)-1]
		d := grid.Dimensions{Width: int(last.X) + 1, Height: int(last.Y) + 1}
		if d.VertexCount() == len(vertices) && d.TriangleCount() == len(triangles) {
			report.Dimensions = d
		}
	}

	return report, nil
}
