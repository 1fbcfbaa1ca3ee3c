package sink

import (
	"slices"

	"github.com/matzehuels/xui/pkg/draw"
	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/tree"
)

// Shape is one recorded shape.
type Shape struct {
	ID       string        `json:"id" yaml:"id"`
	Points   []layout.Vec3 `json:"points" yaml:"points"`
	Indices  []uint16      `json:"indices" yaml:"indices,flow"`
	Material string        `json:"material" yaml:"material"`
}

// Depth returns the paint depth of the shape.
func (s Shape) Depth() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[0].Z
}

// MaterialEntry is a named material.
type MaterialEntry struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Scene is everything one emission produced.
type Scene struct {
	Width     float64         `json:"width" yaml:"width"`
	Height    float64         `json:"height" yaml:"height"`
	Shapes    []Shape         `json:"shapes" yaml:"shapes"`
	Materials []MaterialEntry `json:"materials" yaml:"materials"`
}

// Recorder is an in-memory [draw.Writer]. The zero value is ready to use.
type Recorder struct {
	materials draw.MaterialCache
	shapes    []Shape
}

var _ draw.Writer = (*Recorder)(nil)

// AddMaterial registers m and returns its name.
func (r *Recorder) AddMaterial(m draw.Material) string {
	return r.materials.Add(m)
}

// WriteShape records a copy of the shape.
func (r *Recorder) WriteShape(id tree.ID, points []layout.Vec3, indices []uint16, material string) error {
	r.shapes = append(r.shapes, Shape{
		ID:       id.String(),
		Points:   slices.Clone(points),
		Indices:  slices.Clone(indices),
		Material: material,
	})
	return nil
}

// Shapes returns the recorded shapes in emission order.
func (r *Recorder) Shapes() []Shape { return slices.Clone(r.shapes) }

// Scene returns the recorded shapes on a canvas of the given size.
func (r *Recorder) Scene(canvas layout.Vec2) Scene {
	mats := r.materials.Materials()
	entries := make([]MaterialEntry, 0, len(mats))
	for _, m := range mats {
		name, _ := r.materials.Name(m)
		entries = append(entries, MaterialEntry{Name: name, Color: m.Color.Hex()})
	}
	return Scene{
		Width:     canvas.X,
		Height:    canvas.Y,
		Shapes:    r.Shapes(),
		Materials: entries,
	}
}

// Reset drops every recorded shape and material.
func (r *Recorder) Reset() {
	r.materials = draw.MaterialCache{}
	r.shapes = nil
}
