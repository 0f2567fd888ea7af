// Package export writes generated grid meshes to interchange formats.
package export

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gridmesh/pkg/grid"
)

// Generator is recorded in the asset metadata of exported files.
const Generator = "gridmesh"

// ErrEmptyMesh is returned when a mesh has no triangles to export.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Document builds a single-mesh glTF document with positions, flat normals
// and a triangle index buffer.
func Document(mesh *grid.Mesh, name string) (*gltf.Document, error) {
	if len(mesh.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator

	posAccessor := modeler.WritePosition(doc, mesh.Positions())
	normalAccessor := modeler.WriteNormal(doc, mesh.FlatNormals())
	indicesAccessor := modeler.WriteIndices(doc, mesh.Indices())

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
			gltf.NORMAL:   uint32(normalAccessor),
		},
		Indices:  gltf.Index(uint32(indicesAccessor)),
		Material: gltf.Index(0),
	}

	// The grid mixes windings, so both faces must be drawn.
	doc.Materials = []*gltf.Material{{
		Name:        name,
		DoubleSided: true,
		AlphaMode:   gltf.AlphaOpaque,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}}
	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	return doc, nil
}

// WriteGLB exports mesh as a binary glTF file at path.
func WriteGLB(mesh *grid.Mesh, path string) error {
	name := "Grid" + mesh.Dimensions.String()
	doc, err := Document(mesh, name)
	if err != nil {
		return errors.Wrapf(err, "exporting %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}

	if err := gltf.SaveBinary(doc, path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
