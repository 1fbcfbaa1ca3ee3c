package style

import (
	"fmt"
	"strconv"
)

// UnitKind distinguishes absolute from relative lengths.
type UnitKind uint8

const (
	// UnitNone marks an unset value. It is the zero value.
	UnitNone UnitKind = iota
	// UnitPixel is an absolute length in pixels.
	UnitPixel
	// UnitPercent is a percentage of the parent's content size.
	UnitPercent
)

// Unit is a length in pixels or percent. The zero Unit is unset.
type Unit struct {
	Kind  UnitKind
	Value float64
}

// Px returns a pixel unit.
func Px(v float64) Unit { return Unit{Kind: UnitPixel, Value: v} }

// Pct returns a percentage unit.
func Pct(v float64) Unit { return Unit{Kind: UnitPercent, Value: v} }

// IsSet reports whether the unit carries a value.
func (u Unit) IsSet() bool { return u.Kind != UnitNone }

// Calc resolves the unit against an available length. Percentages are
// clamped to [0, 100]; unset units resolve to 0.
func (u Unit) Calc(available float64) float64 {
	switch u.Kind {
	case UnitPixel:
		return u.Value
	case UnitPercent:
		return available * min(max(u.Value, 0), 100) / 100
	}
	return 0
}

// String formats the unit the way the style source writes it.
func (u Unit) String() string {
	switch u.Kind {
	case UnitPixel:
		return strconv.FormatFloat(u.Value, 'f', -1, 64) + "px"
	case UnitPercent:
		return strconv.FormatFloat(u.Value, 'f', -1, 64) + "%"
	}
	return "unset"
}

// SizeMode selects how a width or height is derived.
type SizeMode uint8

const (
	// SizeUnset leaves the dimension to the default (automatic).
	SizeUnset SizeMode = iota
	// SizeAuto fills the available space.
	SizeAuto
	// SizeFitContent derives the dimension from the node's children.
	SizeFitContent
	// SizeFixed uses an explicit unit.
	SizeFixed
)

// Size is a width or height declaration. The zero Size is unset.
type Size struct {
	Mode SizeMode
	Unit Unit // Only meaningful for SizeFixed
}

// Auto returns an automatic size.
func Auto() Size { return Size{Mode: SizeAuto} }

// FitContent returns a fit-content size.
func FitContent() Size { return Size{Mode: SizeFitContent} }

// Fixed returns an explicit size.
func Fixed(u Unit) Size { return Size{Mode: SizeFixed, Unit: u} }

// IsSet reports whether the size was declared.
func (s Size) IsSet() bool { return s.Mode != SizeUnset }

// String formats the size the way the style source writes it.
func (s Size) String() string {
	switch s.Mode {
	case SizeAuto:
		return "auto"
	case SizeFitContent:
		return "fit-content"
	case SizeFixed:
		return s.Unit.String()
	}
	return "unset"
}

// Edges holds one optional unit per side.
type Edges struct {
	Top, Right, Bottom, Left Unit
}

// Uniform returns Edges with the same unit on every side.
func Uniform(u Unit) Edges { return Edges{Top: u, Right: u, Bottom: u, Left: u} }

// overlay returns e with every side set in o replacing the current value.
func (e Edges) overlay(o Edges) Edges {
	e.Top = pick(e.Top, o.Top)
	e.Right = pick(e.Right, o.Right)
	e.Bottom = pick(e.Bottom, o.Bottom)
	e.Left = pick(e.Left, o.Left)
	return e
}

func (e Edges) String() string {
	return fmt.Sprintf("%s %s %s %s", e.Top, e.Right, e.Bottom, e.Left)
}

func pick(cur, next Unit) Unit {
	if next.IsSet() {
		return next
	}
	return cur
}
