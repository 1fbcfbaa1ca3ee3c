package layout

import "fmt"

// Vec2 is a 2D size or point in pixels.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec3 is a position; Z is the tree depth and only orders painting.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Insets are distances from a center to the four sides of a box.
type Insets struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Width returns Left + Right.
func (i Insets) Width() float64 { return i.Left + i.Right }

// Height returns Top + Bottom.
func (i Insets) Height() float64 { return i.Top + i.Bottom }

// Box is the solved geometry of one node.
type Box struct {
	Center  Vec3   `json:"center" yaml:"center"`
	Size    Vec2   `json:"size" yaml:"size"`
	Outer   Insets `json:"outer" yaml:"outer"`     // margin-expanded
	Content Insets `json:"content" yaml:"content"` // padding-reduced
}

// Min returns the top-left corner of the border box.
func (b Box) Min() Vec2 {
	return Vec2{X: b.Center.X - b.Size.X/2, Y: b.Center.Y - b.Size.Y/2}
}

// Max returns the bottom-right corner of the border box.
func (b Box) Max() Vec2 {
	return Vec2{X: b.Center.X + b.Size.X/2, Y: b.Center.Y + b.Size.Y/2}
}

// Transform is a Box stamped with the generation of the pass that last
// changed it.
type Transform struct {
	Box        `yaml:",inline"`
	Generation uint64 `json:"generation" yaml:"generation"`
}

func (t Transform) String() string {
	return fmt.Sprintf("center=(%g,%g,%g) size=%gx%g gen=%d",
		t.Center.X, t.Center.Y, t.Center.Z, t.Size.X, t.Size.Y, t.Generation)
}

// Axis is a virtual length: a percentage of the available space plus a
// pixel amount.
type Axis struct {
	Pct float64 `json:"pct" yaml:"pct"`
	Px  float64 `json:"px" yaml:"px"`
}

// Resolve returns the pixel length against available.
func (a Axis) Resolve(available float64) float64 {
	return available*a.Pct/100 + a.Px
}

func (a Axis) add(b Axis) Axis { return Axis{Pct: a.Pct + b.Pct, Px: a.Px + b.Px} }

func (a Axis) max(b Axis) Axis { return Axis{Pct: max(a.Pct, b.Pct), Px: max(a.Px, b.Px)} }

// Virtual is the phase-one size of a node.
type Virtual struct {
	Width  Axis `json:"width" yaml:"width"`
	Height Axis `json:"height" yaml:"height"`
}
