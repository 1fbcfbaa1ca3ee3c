package style

import "fmt"

// Display is the display mode of a node. Only flex layout exists.
type Display uint8

const (
	DisplayUnset Display = iota
	DisplayFlex
)

// Direction is the main axis of a flex container.
type Direction uint8

const (
	DirectionUnset Direction = iota
	DirectionRow
	DirectionColumn
)

func (d Direction) String() string {
	switch d {
	case DirectionRow:
		return "row"
	case DirectionColumn:
		return "column"
	}
	return "unset"
}

// Justify is the main-axis distribution of children. Start is the only
// behaviour the solver implements; the parser rejects every other value.
type Justify uint8

const (
	JustifyUnset Justify = iota
	JustifyStart
)

// Color is an sRGB background color. The zero Color is unset.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB returns a set color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, Valid: true} }

// Hex formats the color as #rrggbb. Unset colors format as black.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Rules is one style-rule record. Every field is optional; the zero value of
// a field means it was not declared. Rules is comparable with ==.
type Rules struct {
	Display    Display
	Background Color
	Direction  Direction
	Justify    Justify
	Gap        Unit
	Margin     Edges
	Padding    Edges
	Width      Size
	Height     Size
}

// Overlay returns r with every field declared in o replacing r's value.
// Fields o leaves unset keep r's value.
func (r Rules) Overlay(o Rules) Rules {
	if o.Display != DisplayUnset {
		r.Display = o.Display
	}
	if o.Background.Valid {
		r.Background = o.Background
	}
	if o.Direction != DirectionUnset {
		r.Direction = o.Direction
	}
	if o.Justify != JustifyUnset {
		r.Justify = o.Justify
	}
	r.Gap = pick(r.Gap, o.Gap)
	r.Margin = r.Margin.overlay(o.Margin)
	r.Padding = r.Padding.overlay(o.Padding)
	if o.Width.IsSet() {
		r.Width = o.Width
	}
	if o.Height.IsSet() {
		r.Height = o.Height
	}
	return r
}

// Merge folds records from the zero record in order. For every field the
// last record that declares it wins.
func Merge(records ...Rules) Rules {
	var out Rules
	for _, r := range records {
		out = out.Overlay(r)
	}
	return out
}

// FlexDirection returns the effective main axis; unset means row.
func (r Rules) FlexDirection() Direction {
	if r.Direction == DirectionUnset {
		return DirectionRow
	}
	return r.Direction
}

// BackgroundOrBlack returns the background color, or black when unset.
func (r Rules) BackgroundOrBlack() Color {
	if r.Background.Valid {
		return r.Background
	}
	return RGB(0, 0, 0)
}

// Declared returns the declared fields of r as property/value pairs in the
// style source notation. Unset fields are omitted.
func (r Rules) Declared() map[string]string {
	out := make(map[string]string)
	if r.Display == DisplayFlex {
		out["display"] = "flex"
	}
	if r.Background.Valid {
		out["background-color"] = r.Background.Hex()
	}
	if r.Direction != DirectionUnset {
		out["flex-direction"] = r.Direction.String()
	}
	if r.Justify == JustifyStart {
		out["justify-content"] = "start"
	}
	if r.Gap.IsSet() {
		out["gap"] = r.Gap.String()
	}
	if r.Margin != (Edges{}) {
		out["margin"] = r.Margin.String()
	}
	if r.Padding != (Edges{}) {
		out["padding"] = r.Padding.String()
	}
	if r.Width.IsSet() {
		out["width"] = r.Width.String()
	}
	if r.Height.IsSet() {
		out["height"] = r.Height.String()
	}
	return out
}
