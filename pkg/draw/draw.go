// Package draw turns solved node geometry into shape records.
//
// [Emit] walks nodes in sequencer order and, for every node, registers the
// material of its background color with a [Writer] and writes one quad
// made of two triangles. The package keeps no state between calls; writers
// own whatever they build. Implementations live in package sink.
package draw

import (
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

// QuadIndices is the triangle fan of a four-corner shape.
var QuadIndices = []uint16{0, 1, 2, 0, 2, 3}

// Material is the paint of a shape.
type Material struct {
	Color style.Color
}

// Writer receives the output of Emit.
type Writer interface {
	// AddMaterial registers m and returns its name. Equal materials should
	// return the same name.
	AddMaterial(m Material) string
	// WriteShape records one shape. Points are corners in pixel space; Z
	// carries the paint depth.
	WriteShape(id tree.ID, points []layout.Vec3, indices []uint16, material string) error
}

// Source returns the current transform of a node.
type Source interface {
	Transform(id tree.ID) (layout.Transform, bool)
}

// Emit writes one shape per node of order. Every node must have a
// transform; a missing one panics with an INTERNAL_ERROR.
func Emit(w Writer, order []tree.ID, src Source, styles layout.Styles) error {
	for _, id := range order {
		t, ok := src.Transform(id)
		if !ok {
			errors.Internal("node %q has no transform", id)
		}
		mat := w.AddMaterial(Material{Color: styles.Resolved(id).BackgroundOrBlack()})
		if err := w.WriteShape(id, Corners(t), QuadIndices, mat); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "write shape %s", id)
		}
	}
	return nil
}

// Corners returns the corners of t clockwise from the top left.
func Corners(t layout.Transform) []layout.Vec3 {
	lo, hi, z := t.Min(), t.Max(), t.Center.Z
	return []layout.Vec3{
		{X: lo.X, Y: lo.Y, Z: z},
		{X: hi.X, Y: lo.Y, Z: z},
		{X: hi.X, Y: hi.Y, Z: z},
		{X: lo.X, Y: hi.Y, Z: z},
	}
}
