package layout

import (
	"github.com/matzehuels/xui/pkg/errors"
	"github.com/matzehuels/xui/pkg/style"
	"github.com/matzehuels/xui/pkg/tree"
)

// placement holds the caches of one phase-two walk.
type placement struct {
	g       Graph
	s       Styles
	virtual map[tree.ID]Virtual
	boxes   map[tree.ID]Box
	gaps    map[tree.ID]float64
	cursor  map[tree.ID]float64 // parent -> main-axis offset of the next child
	placed  map[tree.ID]int     // parent -> children placed so far
	depth   map[tree.ID]int
}

// Place runs phase two: it walks order front to back, so every parent is
// placed before its children, and returns the box of every node. Roots are
// sized against viewport.
//
// Children must appear in sibling-rank order. Place panics with an
// INTERNAL_ERROR if a child is reached before its preceding sibling.
func Place(g Graph, s Styles, order []tree.ID, viewport Vec2, virtual map[tree.ID]Virtual) map[tree.ID]Box {
	p := &placement{
		g:       g,
		s:       s,
		virtual: virtual,
		boxes:   make(map[tree.ID]Box, len(order)),
		gaps:    make(map[tree.ID]float64),
		cursor:  make(map[tree.ID]float64),
		placed:  make(map[tree.ID]int),
		depth:   make(map[tree.ID]int, len(order)),
	}
	for _, id := range order {
		p.place(id, viewport)
	}
	return p.boxes
}

func (p *placement) place(id tree.ID, viewport Vec2) {
	parent, err := p.g.Parent(id)
	if err != nil {
		errors.Internal("parent of %q: %v", id, err)
	}
	rules := p.s.Resolved(id)
	v, ok := p.virtual[id]
	if !ok {
		errors.Internal("node %q was not measured", id)
	}

	avail := viewport
	var origin Vec2
	var pb Box
	if parent != tree.None {
		if pb, ok = p.boxes[parent]; !ok {
			errors.Internal("node %q placed before its parent %q", id, parent)
		}
		avail = Vec2{X: pb.Content.Width(), Y: pb.Content.Height()}
		origin = Vec2{X: pb.Center.X - pb.Content.Left, Y: pb.Center.Y - pb.Content.Top}
	}

	size := Vec2{X: v.Width.Resolve(avail.X), Y: v.Height.Resolve(avail.Y)}
	margin := resolveEdges(rules.Margin, avail)
	padding := fitPadding(resolveEdges(rules.Padding, avail), size)

	box := Box{
		Size: size,
		Outer: Insets{
			Top:    size.Y/2 + margin.Top,
			Right:  size.X/2 + margin.Right,
			Bottom: size.Y/2 + margin.Bottom,
			Left:   size.X/2 + margin.Left,
		},
		Content: Insets{
			Top:    size.Y/2 - padding.Top,
			Right:  size.X/2 - padding.Right,
			Bottom: size.Y/2 - padding.Bottom,
			Left:   size.X/2 - padding.Left,
		},
	}

	if parent == tree.None {
		box.Center = Vec3{X: box.Outer.Left, Y: box.Outer.Top}
	} else {
		offset := p.siblingOffset(id, parent)
		prow := p.s.Resolved(parent).FlexDirection() == style.DirectionRow
		cx := origin.X + box.Outer.Left
		cy := origin.Y + box.Outer.Top
		if prow {
			cx += offset
			p.cursor[parent] = offset + box.Outer.Width() + p.gaps[parent]
		} else {
			cy += offset
			p.cursor[parent] = offset + box.Outer.Height() + p.gaps[parent]
		}
		p.depth[id] = p.depth[parent] + 1
		box.Center = Vec3{X: cx, Y: cy, Z: float64(p.depth[id])}
	}

	if rules.FlexDirection() == style.DirectionRow {
		p.gaps[id] = rules.Gap.Calc(size.X)
	} else {
		p.gaps[id] = rules.Gap.Calc(size.Y)
	}
	p.boxes[id] = box
}

// siblingOffset returns the main-axis offset of id within parent: the outer
// extents and gaps of every earlier sibling.
func (p *placement) siblingOffset(id, parent tree.ID) float64 {
	rank, err := p.g.Rank(id)
	if err != nil {
		errors.Internal("rank of %q: %v", id, err)
	}
	if placed := p.placed[parent]; placed != rank {
		errors.Internal("child %q at rank %d reached with %d earlier siblings placed in this pass", id, rank, placed)
	}
	p.placed[parent] = rank + 1
	return p.cursor[parent]
}

// resolveEdges resolves horizontal sides against the available width and
// vertical sides against the available height.
func resolveEdges(e style.Edges, avail Vec2) Insets {
	return Insets{
		Top:    e.Top.Calc(avail.Y),
		Right:  e.Right.Calc(avail.X),
		Bottom: e.Bottom.Calc(avail.Y),
		Left:   e.Left.Calc(avail.X),
	}
}

// fitPadding scales padding down proportionally on any axis where it
// exceeds the size.
func fitPadding(pad Insets, size Vec2) Insets {
	if w, sx := pad.Width(), max(size.X, 0); w > sx {
		pad.Left = sx * pad.Left / w
		pad.Right = sx * pad.Right / w
	}
	if h, sy := pad.Height(), max(size.Y, 0); h > sy {
		pad.Top = sy * pad.Top / h
		pad.Bottom = sy * pad.Bottom / h
	}
	return pad
}
