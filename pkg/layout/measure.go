package layout

import (
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

// Graph is the read side of the node tree the solver walks.
// *tree.Tree implements it.
type Graph interface {
	Node(id tree.ID) (tree.Node, error)
	Children(id tree.ID) ([]tree.ID, error)
	Parent(id tree.ID) (tree.ID, error)
	Rank(id tree.ID) (int, error)
}

// Styles returns the resolved rule record of a node.
// *style.Cascade implements it.
type Styles interface {
	Resolved(id tree.ID) style.Rules
}

type axis int

const (
	horizontal axis = iota
	vertical
)

// Measure runs phase one: it walks order back to front, so every child is
// measured before its parent, and returns the virtual size of every node.
func Measure(g Graph, s Styles, order []tree.ID) map[tree.ID]Virtual {
	virtual := make(map[tree.ID]Virtual, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		node := mustNode(g, id)
		rules := s.Resolved(id)

		switch node.Kind.(type) {
		case tree.Foreign:
			virtual[id] = Virtual{Width: leaf(rules.Width), Height: leaf(rules.Height)}
		default:
			kids := mustChildren(g, id)
			virtual[id] = Virtual{
				Width:  container(rules, rules.Width, horizontal, kids, virtual),
				Height: container(rules, rules.Height, vertical, kids, virtual),
			}
		}
	}
	return virtual
}

// leaf measures one axis of a foreign node.
func leaf(size style.Size) Axis {
	switch size.Mode {
	case style.SizeFitContent:
		return Axis{}
	case style.SizeFixed:
		return fromUnit(size.Unit)
	}
	return Axis{Pct: 100}
}

// container measures one axis of a container node. Fit-content sums the
// children on the main axis and takes their maximum on the cross axis.
func container(rules style.Rules, size style.Size, a axis, kids []tree.ID, virtual map[tree.ID]Virtual) Axis {
	switch size.Mode {
	case style.SizeFixed:
		return fromUnit(size.Unit)
	case style.SizeUnset, style.SizeAuto:
		return Axis{Pct: 100}
	}

	main := (a == horizontal) == (rules.FlexDirection() == style.DirectionRow)
	var out Axis
	for _, kid := range kids {
		v, ok := virtual[kid]
		if !ok {
			errors.Internal("child %q measured after its parent", kid)
		}
		if main {
			out = out.add(v.on(a))
		} else {
			out = out.max(v.on(a))
		}
	}
	if main && len(kids) > 0 {
		gap := fromSpacing(rules.Gap)
		n := float64(len(kids) - 1)
		out = out.add(Axis{Pct: gap.Pct * n, Px: gap.Px * n})
	}

	if a == horizontal {
		out = out.add(fromSpacing(rules.Padding.Left)).add(fromSpacing(rules.Padding.Right))
	} else {
		out = out.add(fromSpacing(rules.Padding.Top)).add(fromSpacing(rules.Padding.Bottom))
	}
	return out
}

func (v Virtual) on(a axis) Axis {
	if a == horizontal {
		return v.Width
	}
	return v.Height
}

// fromUnit converts an explicit width or height. Percentages pass through
// unchanged, so a child may overflow its parent.
func fromUnit(u style.Unit) Axis {
	switch u.Kind {
	case style.UnitPixel:
		return Axis{Px: u.Value}
	case style.UnitPercent:
		return Axis{Pct: u.Value}
	}
	return Axis{}
}

// fromSpacing converts a gap or padding unit with percentages clamped to
// [0, 100], matching [style.Unit.Calc].
func fromSpacing(u style.Unit) Axis {
	if u.Kind == style.UnitPercent {
		return Axis{Pct: min(max(u.Value, 0), 100)}
	}
	return fromUnit(u)
}

func mustNode(g Graph, id tree.ID) tree.Node {
	n, err := g.Node(id)
	if err != nil {
		errors.Internal("sequenced node %q missing from graph: %v", id, err)
	}
	return n
}

func mustChildren(g Graph, id tree.ID) []tree.ID {
	kids, err := g.Children(id)
	if err != nil {
		errors.Internal("children of %q: %v", id, err)
	}
	return kids
}
