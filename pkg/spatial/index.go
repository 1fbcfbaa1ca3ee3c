// Package spatial keeps an R-tree of node bounds that is updated from the
// change sets of layout passes.
package spatial

import (
	"cmp"
	"slices"

	"github.com/tidwall/rtree"

	"github.com/matzehuels/xui/pkg/layout"
	"github.com/matzehuels/xui/pkg/tree"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min layout.Vec2 `json:"min" yaml:"min"`
	Max layout.Vec2 `json:"max" yaml:"max"`
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p layout.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// BoundsOf returns the border box of t: its center plus and minus half its
// size.
func BoundsOf(t layout.Transform) Rect {
	a, b := t.Min(), t.Max()
	return Rect{
		Min: layout.Vec2{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: layout.Vec2{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

type entry struct {
	rect  Rect
	depth float64
}

// Index is an R-tree with one entry per node. It is not safe for
// concurrent use.
type Index struct {
	rt      rtree.RTreeG[tree.ID]
	entries map[tree.ID]entry
}

// New returns an empty index.
func New() *Index {
	return &Index{entries: make(map[tree.ID]entry)}
}

// Source returns the current transform of a node.
type Source interface {
	Transform(id tree.ID) (layout.Transform, bool)
}

// Update applies one pass: entries of removed and changed ids are deleted,
// then fresh entries are inserted for the changed ids only.
func (ix *Index) Update(removed, changed []tree.ID, src Source) {
	for _, id := range removed {
		ix.delete(id)
	}
	for _, id := range changed {
		ix.delete(id)
	}
	for _, id := range changed {
		t, ok := src.Transform(id)
		if !ok {
			continue
		}
		e := entry{rect: BoundsOf(t), depth: t.Center.Z}
		ix.rt.Insert(point(e.rect.Min), point(e.rect.Max), id)
		ix.entries[id] = e
	}
}

// Apply is Update for a finished pass.
func (ix *Index) Apply(p layout.Pass, src Source) {
	ix.Update(p.Removed, p.Changed, src)
}

func (ix *Index) delete(id tree.ID) {
	e, ok := ix.entries[id]
	if !ok {
		return
	}
	ix.rt.Delete(point(e.rect.Min), point(e.rect.Max), id)
	delete(ix.entries, id)
}

// At returns the ids whose bounds contain (x, y), deepest first.
func (ix *Index) At(x, y float64) []tree.ID {
	p := [2]float64{x, y}
	return ix.search(p, p)
}

// Within returns the ids whose bounds intersect r, deepest first.
func (ix *Index) Within(r Rect) []tree.ID {
	return ix.search(point(r.Min), point(r.Max))
}

func (ix *Index) search(lo, hi [2]float64) []tree.ID {
	var out []tree.ID
	ix.rt.Search(lo, hi, func(_, _ [2]float64, id tree.ID) bool {
		out = append(out, id)
		return true
	})
	slices.SortFunc(out, func(a, b tree.ID) int {
		if c := cmp.Compare(ix.entries[b].depth, ix.entries[a].depth); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return out
}

// Bounds returns the indexed bounds of id.
func (ix *Index) Bounds(id tree.ID) (Rect, bool) {
	e, ok := ix.entries[id]
	return e.rect, ok
}

// Len returns the number of entries.
func (ix *Index) Len() int { return len(ix.entries) }

func point(v layout.Vec2) [2]float64 { return [2]float64{v.X, v.Y} }
